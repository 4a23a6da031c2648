package generate

import (
	"github.com/kernelmeta/gencontrol/internal/defines"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/output"
)

// FeaturesetNone is the feature set of plain builds. It adds nothing to the
// local version.
const FeaturesetNone = "none"

// Variant is one (architecture, feature set, flavour) combination.
type Variant struct {
	Arch       string `json:"arch" yaml:"arch"`
	Featureset string `json:"featureset" yaml:"featureset"`
	Flavour    string `json:"flavour" yaml:"flavour"`
}

// Dims returns the store dimensions of v.
func (v Variant) Dims() defines.Dims {
	return defines.Dims{Arch: v.Arch, Featureset: v.Featureset, Flavour: v.Flavour}
}

// String renders v as arch/featureset/flavour.
func (v Variant) String() string {
	return v.Arch + "/" + v.Featureset + "/" + v.Flavour
}

// LocalVersion is the kernel local version of v: -<featureset> unless the
// feature set is none, then -<flavour>.
func (v Variant) LocalVersion() string {
	lv := ""
	if v.Featureset != FeaturesetNone {
		lv = "-" + v.Featureset
	}
	return lv + "-" + v.Flavour
}

// Variants lists the declared variants, architecture-major, in declaration
// order: base.arches, then base/<arch>.featuresets, then
// base/<arch>/<featureset>.flavours. Feature sets whose merged base section
// sets enabled to false are skipped.
func Variants(store *defines.Store) ([]Variant, error) {
	arches, err := store.Declared(defines.Key{Section: "base"}, "arches")
	if err != nil {
		return nil, err
	}
	if arches == nil {
		return nil, gerrors.NewMissingKeyError("base", "arches", "base")
	}

	var out []Variant
	for _, arch := range arches {
		featuresets, err := store.Declared(defines.Key{Section: "base", Arch: arch}, "featuresets")
		if err != nil {
			return nil, err
		}
		for _, fs := range featuresets {
			dims := defines.Dims{Arch: arch, Featureset: fs}
			if !store.ResolveFlag("base", dims, "enabled", true) {
				output.Debug("skipping disabled featureset", "arch", arch, "featureset", fs)
				continue
			}

			key := defines.Key{Section: "base", Arch: arch, Featureset: fs}
			flavours, err := store.Declared(key, "flavours")
			if err != nil {
				return nil, err
			}
			if flavours == nil {
				return nil, gerrors.NewMissingKeyError("base", "flavours", key.String())
			}
			for _, flavour := range flavours {
				out = append(out, Variant{Arch: arch, Featureset: fs, Flavour: flavour})
			}
		}
	}
	return out, nil
}
