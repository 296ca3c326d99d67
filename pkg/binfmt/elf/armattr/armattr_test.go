package armattr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func putULEB(out []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

func put32(out []byte, v uint32) []byte {
	return append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// buildAttributesSection assembles a minimal .ARM.attributes image with
// one vendor sub-section ("aeabi"), one Tag_File (1) scope, containing
// Tag_CPU_name (5, NTBS) and Tag_CPU_arch (6, ULEB128).
func buildAttributesSection() []byte {
	var body []byte
	body = putULEB(body, 5) // Tag_CPU_name
	body = append(body, []byte("Cortex-A9\x00")...)
	body = putULEB(body, 6) // Tag_CPU_arch
	body = putULEB(body, 10)

	var scope []byte
	scope = append(scope, 1) // Tag_File
	scope = put32(scope, uint32(4+len(body)))
	scope = append(scope, body...)

	vendor := append([]byte("aeabi\x00"), scope...)

	var record []byte
	record = put32(record, uint32(4+len(vendor)))
	record = append(record, vendor...)

	out := []byte{FormatVersion}
	out = append(out, record...)
	return out
}

func TestParse_BadFormatVersion(t *testing.T) {
	_, err := Parse([]byte{0x00})
	assert.Error(t, err)
}

func TestParse_EmptyImage(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestParse_KnownTags(t *testing.T) {
	image := buildAttributesSection()

	subs, err := Parse(image)
	assert.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, "aeabi", subs[0].Vendor)
	assert.Len(t, subs[0].Attributes, 2)

	cpuName := subs[0].Attributes[0]
	assert.Equal(t, "Tag_CPU_name", cpuName.Name)
	assert.Equal(t, "Cortex-A9", cpuName.Text)

	cpuArch := subs[0].Attributes[1]
	assert.Equal(t, "Tag_CPU_arch", cpuArch.Name)
	assert.Equal(t, uint64(10), cpuArch.Value)
	assert.Equal(t, "v7", cpuArch.Description)
}
