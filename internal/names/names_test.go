package names

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardrender/internal/domain"
)

func TestParse_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   \n\t\n  \r\n", []string{}},
		{"single", "Ali", []string{"Ali"}},
		{"trimmed", "  Ali  ", []string{"Ali"}},
		{"multi with blanks", "Ali\n\n  Sara \r\nعلي\n", []string{"Ali", "Sara", "علي"}},
		{"inner spaces kept", "Ali Hassan", []string{"Ali Hassan"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, Parse(tc.in))
		})
	}
}

func TestFromValues_KeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, FromValues([]string{" b", "", "a ", "  "}))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil, 10, 10), domain.ErrEmptyInput)
	assert.ErrorIs(t, Validate([]string{"a", "b", "c"}, 2, 10), domain.ErrTooManyNames)
	assert.ErrorIs(t, Validate([]string{"abcdef"}, 2, 5), domain.ErrNameTooLong)
	assert.NoError(t, Validate([]string{"عليعلي"}, 2, 6))
	assert.NoError(t, Validate([]string{strings.Repeat("x", 500)}, 0, 0))
}

func TestCardFilename(t *testing.T) {
	assert.Equal(t, "Invitation_Card_Ali.png", CardFilename("", "Ali"))
	assert.Equal(t, "Eid_علي.png", CardFilename("Eid_", "علي"))
	assert.Equal(t, "Invitation_Card_.._etc_passwd.png", CardFilename("", "../etc/passwd"))
	assert.Equal(t, "Invitation_Card_Ali_Hassan.png", CardFilename("", "Ali Hassan"))
}

func TestUniqueFilenames_SuffixesDuplicates(t *testing.T) {
	got := UniqueFilenames("", []string{"Ali", "Sara", "Ali", "Ali"})
	assert.Equal(t, []string{
		"Invitation_Card_Ali.png",
		"Invitation_Card_Sara.png",
		"Invitation_Card_Ali_2.png",
		"Invitation_Card_Ali_3.png",
	}, got)
}

func TestUniqueFilenames_AvoidsExistingSuffix(t *testing.T) {
	got := UniqueFilenames("", []string{"Ali_2", "Ali", "Ali"})
	assert.Equal(t, []string{
		"Invitation_Card_Ali_2.png",
		"Invitation_Card_Ali.png",
		"Invitation_Card_Ali_3.png",
	}, got)
}
