package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestDecodesFormStrings(t *testing.T) {
	body := `{"name":"ada","password":"secret1","age":"36","skills":"programming, design;  management ,","salaryExpectation":"60000-90000"}`

	var req RegisterRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	age, ok := req.Age.Int()
	assert.True(t, ok)
	assert.Equal(t, 36, age)
	assert.Equal(t, SkillList{"programming", "design", "management"}, req.Skills)
	assert.Equal(t, FlexString("60000-90000"), req.SalaryExpectation)
}

func TestRegisterRequestDecodesTypedValues(t *testing.T) {
	body := `{"name":"ada","password":"secret1","age":36,"skills":["Go","SQL"],"salaryExpectation":75000}`

	var req RegisterRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	age, ok := req.Age.Int()
	assert.True(t, ok)
	assert.Equal(t, 36, age)
	assert.Equal(t, SkillList{"Go", "SQL"}, req.Skills)
	assert.Equal(t, FlexString("75000"), req.SalaryExpectation)
}

func TestSkillListRejectsObjects(t *testing.T) {
	var list SkillList
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &list))
}

func TestParseEducationLevel(t *testing.T) {
	tests := []struct {
		input string
		want  EducationLevel
		ok    bool
	}{
		{"phd", EducationPhD, true},
		{" Masters ", EducationMasters, true},
		{"bachelor's", EducationBachelors, true},
		{"high_school", EducationHighSchool, true},
		{"", EducationUnknown, true},
		{"bootcamp", EducationUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEducationLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSalaryRangeString(t *testing.T) {
	assert.Equal(t, "$120,000 - $150,000", SalaryRange{Min: 120000, Max: 150000}.String())
	assert.Equal(t, "$0 - $999", SalaryRange{Min: 0, Max: 999}.String())
	assert.True(t, SalaryRange{Min: 120000, Max: 150000}.Contains(135000))
	assert.False(t, SalaryRange{Min: 120000, Max: 150000}.Contains(150001))
}
