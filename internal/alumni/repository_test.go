package alumni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilterEmpty(t *testing.T) {
	assert.Empty(t, buildFilter(ListFilter{}))
}

func TestBuildFilterSearchSpansProfileFields(t *testing.T) {
	filter := buildFilter(ListFilter{Search: "acme"})
	or, ok := filter["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 6)
}

func TestBuildFilterCombines(t *testing.T) {
	active := true
	filter := buildFilter(ListFilter{
		Department:     "Computer Science",
		Degree:         "BSc",
		GraduationYear: 2019,
		IsActive:       &active,
	})
	assert.Equal(t, 2019, filter["graduation_year"])
	assert.Equal(t, true, filter["is_active"])
	assert.Contains(t, filter, "department")
	assert.Contains(t, filter, "degree")
	assert.NotContains(t, filter, "$or")
}
