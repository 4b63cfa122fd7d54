package icon

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// SamplesDir is where the platform SDK keeps its sample expression menu icons.
const SamplesDir = "Packages/com.vrchat.avatars/Samples/AV3 Demo Assets/Expressions Menu/Icons"

// SamplePrefix marks an icon reference as a sample catalog key in definition files.
const SamplePrefix = "sample:"

// ErrUnknownSample is returned when a sample key is not in the catalog.
var ErrUnknownSample = errors.New("unknown sample icon")

// Icon is a handle to an image asset. A nil *Icon means "no icon".
type Icon struct {
	// Name is a short display name, the sample key for catalog icons.
	Name string `json:"name" yaml:"name"`

	// Path is the asset path of the image.
	Path string `json:"path" yaml:"path"`
}

// New returns a handle for the image at p, named after its file name.
func New(p string) *Icon {
	base := path.Base(p)
	return &Icon{
		Name: strings.TrimSuffix(base, path.Ext(base)),
		Path: p,
	}
}

// String returns the icon path.
func (i *Icon) String() string {
	if i == nil {
		return ""
	}
	return i.Path
}

// Sample icons shipped with the platform SDK.
var (
	FaceAngry      = sample("face_angry")
	FaceGasp       = sample("face_gasp")
	FaceHappy      = sample("face_happy")
	FaceMeh        = sample("face_meh")
	FaceSmile      = sample("face_smile")
	HandNormal     = sample("hand_normal")
	HandRock       = sample("hand_rock")
	HandWaving     = sample("hand_waving")
	ItemFlashlight = sample("item_flashlight")
	ItemFolder     = sample("item_folder")
	ItemLight      = sample("item_light")
	ItemPistol     = sample("item_pistol")
	ItemSword      = sample("item_sword")
	ItemWand       = sample("item_wand")
	PersonDance    = sample("person_dance")
	PersonRunning  = sample("person_running")
	PersonWave     = sample("person_wave")
	SymbolColors   = sample("symbol_colors")
	SymbolHeart    = sample("symbol_heart")
	SymbolMagic    = sample("symbol_magic")
	SymbolMusic    = sample("symbol_music")
	SymbolPaw      = sample("symbol_paw")
)

var samples map[string]*Icon

func sample(key string) *Icon {
	if samples == nil {
		samples = make(map[string]*Icon)
	}
	i := &Icon{Name: key, Path: SamplesDir + "/" + key + ".png"}
	samples[key] = i
	return i
}

// Sample looks up a catalog icon by key, e.g. "item_folder".
// The "sample:" prefix is accepted and ignored.
func Sample(key string) (*Icon, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), SamplePrefix)
	i, ok := samples[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSample, key)
	}
	return i, nil
}

// Samples returns the catalog keys in sorted order.
func Samples() []string {
	keys := make([]string, 0, len(samples))
	for k := range samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
