package media

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Artefact is one normalized image of a product row, waiting to be exported.
type Artefact struct {
	StoreViewCode       string `mapstructure:"store_view_code"`
	AttributeSetCode    string `mapstructure:"attribute_set_code"`
	ParentSKU           string `mapstructure:"image_parent_sku"`
	ImagePath           string `mapstructure:"image_path"`
	ImagePathNew        string `mapstructure:"image_path_new"`
	HideFromProductPage int    `mapstructure:"hide_from_product_page"`
	ImageLabel          string `mapstructure:"image_label"`

	// OriginalColumnNames maps every artefact column to the product CSV column it was read from.
	OriginalColumnNames map[string]string `mapstructure:"-"`
}

// NewArtefact decodes a flat column map into an Artefact.
func NewArtefact(columns map[string]interface{}, originalColumnNames map[string]string) (*Artefact, error) {
	a := &Artefact{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           a,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(columns); err != nil {
		return nil, fmt.Errorf("new artefact: %w", err)
	}
	a.OriginalColumnNames = originalColumnNames
	return a, nil
}

// ArtefactSet holds at most one artefact per original image path, in insertion order.
type ArtefactSet struct {
	keys  []string
	items map[string]*Artefact
}

func NewArtefactSet() *ArtefactSet {
	return &ArtefactSet{items: make(map[string]*Artefact)}
}

func (s *ArtefactSet) Has(imagePath string) bool {
	_, ok := s.items[imagePath]
	return ok
}

func (s *ArtefactSet) Get(imagePath string) (*Artefact, bool) {
	a, ok := s.items[imagePath]
	return a, ok
}

// Add stores a under imagePath unless the path is taken; the first artefact wins.
func (s *ArtefactSet) Add(imagePath string, a *Artefact) bool {
	if s.Has(imagePath) {
		return false
	}
	s.keys = append(s.keys, imagePath)
	s.items[imagePath] = a
	return true
}

func (s *ArtefactSet) Len() int {
	return len(s.keys)
}

func (s *ArtefactSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Values returns the artefacts in insertion order.
func (s *ArtefactSet) Values() []*Artefact {
	out := make([]*Artefact, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}

// ArtefactSink receives the artefacts of a row.
type ArtefactSink interface {
	NewArtefact(columns map[string]interface{}, originalColumnNames map[string]string) (*Artefact, error)
	// AddArtefacts registers artefacts for the current row's product. With
	// override false they are appended to artefacts already registered for it.
	AddArtefacts(artefactType string, artefacts []*Artefact, override bool)
}
