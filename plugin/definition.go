package plugin

import (
	"github.com/cwbudde/algo-ringmod/plugin/param"
)

// APIVersion is the native audio plugin API version the definitions target.
const APIVersion uint32 = 0x010402

// Version is this effect's own version, 1.0.0.
const Version uint32 = 0x010000

// EffectName is the registration and display name of the effect.
const EffectName = "Ring Modulator"

// Widths of the fixed, NUL-terminated string fields in the host's tables.
const (
	EffectNameSize    = 32
	ParameterNameSize = 16
	ParameterUnitSize = 16
)

// ParameterDefinition is one row of the host-facing parameter table.
type ParameterDefinition struct {
	Name            [ParameterNameSize]byte
	Unit            [ParameterUnitSize]byte
	Description     string
	Min             float32
	Max             float32
	Default         float32
	DisplayScale    float32
	DisplayExponent float32
}

// Definition describes the effect to the host. It is built once when the
// package loads and shared by every instance.
type Definition struct {
	Name          [EffectNameSize]byte
	APIVersion    uint32
	PluginVersion uint32

	// Channels is the fixed channel count the effect declares.
	Channels uint32
	Flags    uint64

	Parameters [param.Count]ParameterDefinition

	// The host may call Reset and SetPosition only when these are set.
	HasReset       bool
	HasSetPosition bool
}

// NumParameters returns the number of parameters the effect exposes.
func (d *Definition) NumParameters() uint32 {
	return uint32(len(d.Parameters))
}

var definitions = [1]Definition{newDefinition()}

// Definitions returns the process-wide table of effects this package
// provides. The table is a copy; the package's own table never changes.
func Definitions() [1]Definition {
	return definitions
}

func newDefinition() Definition {
	d := Definition{
		APIVersion:    APIVersion,
		PluginVersion: Version,
		Channels:      2,
	}
	EncodeName(d.Name[:], EffectName)

	for i, pd := range param.Descriptors() {
		p := &d.Parameters[i]
		EncodeName(p.Name[:], pd.Name)
		EncodeName(p.Unit[:], pd.Unit)
		p.Description = pd.Description
		p.Min = pd.Min
		p.Max = pd.Max
		p.Default = pd.Default
		p.DisplayScale = pd.DisplayScale
		p.DisplayExponent = pd.DisplayExponent
	}

	return d
}

// EncodeName copies s into dst as a NUL-terminated string, truncating so the
// terminator always fits. Bytes after the terminator are zeroed.
func EncodeName(dst []byte, s string) {
	if len(dst) == 0 {
		return
	}

	n := copy(dst[:len(dst)-1], s)
	clear(dst[n:])
}

// DecodeName returns the string stored in a NUL-terminated field.
func DecodeName(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}

	return string(src)
}
