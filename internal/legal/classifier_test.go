package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want Category
	}{
		{"CA Vehicle Code 23152(b)", CategoryDUI},
		{"dui", CategoryDUI},
		{"First offense DUI", CategoryDUI},
		{"PC 240", CategoryAssault},
		{"simple assault", CategoryAssault},
		{"Penal Code 242", CategoryUnknown},
		{"XYZ-999", CategoryUnknown},
		{"", CategoryUnknown},
		// DUI is checked first.
		{"DUI 240", CategoryDUI},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code))
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t "))
	assert.Equal(t, 3, CountWords("  one two\tthree\n"))
}

func TestBuildConfirmation(t *testing.T) {
	c := BuildConfirmation(Query{CrimeCode: "PC 240", Jurisdiction: "Los Angeles"})

	assert.Equal(t, "I understand you're asking about PC 240 in Los Angeles.", c.Summary)
	assert.Equal(t, []string{
		"Crime/Penal Code: PC 240",
		"Jurisdiction: Los Angeles",
		"Additional information provided: No",
	}, c.KeyDetails)
	assert.Len(t, c.Questions, 3)
	assert.Contains(t, c.NextSteps, "Legal Decompiler")

	c = BuildConfirmation(Query{CrimeCode: "PC 240", Jurisdiction: "Los Angeles", AdditionalInfo: "details"})
	assert.Equal(t, "Additional information provided: Yes", c.KeyDetails[2])
}
