package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nozima-Rustamova/credit-ML/internal/domain/service"
)

func TestFeatureSet_Float(t *testing.T) {
	f := service.FeatureSet{
		"float":   12.5,
		"float32": float32(3.5),
		"int":     7,
		"int64":   int64(9),
		"number":  json.Number("42.25"),
		"string":  "100.5",
		"garbage": "not a number",
		"nil":     nil,
	}

	assert.Equal(t, 12.5, f.Float("float"))
	assert.Equal(t, 3.5, f.Float("float32"))
	assert.Equal(t, 7.0, f.Float("int"))
	assert.Equal(t, 9.0, f.Float("int64"))
	assert.Equal(t, 42.25, f.Float("number"))
	assert.Equal(t, 100.5, f.Float("string"))
	assert.Equal(t, 0.0, f.Float("garbage"))
	assert.Equal(t, 0.0, f.Float("nil"))
	assert.Equal(t, 0.0, f.Float("absent"))
}

func TestFeatureSet_Int(t *testing.T) {
	f := service.FeatureSet{
		"int":    640,
		"float":  720.0,
		"number": json.Number("500"),
		"string": "680",
		"bad":    "seven hundred",
	}

	for _, tt := range []struct {
		key  string
		want int
	}{
		{"int", 640},
		{"float", 720},
		{"number", 500},
		{"string", 680},
	} {
		got, ok := f.Int(tt.key)
		assert.True(t, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	_, ok := f.Int("bad")
	assert.False(t, ok)
	_, ok = f.Int("absent")
	assert.False(t, ok)
}

func TestFeatureSet_Bool(t *testing.T) {
	f := service.FeatureSet{
		"true":  true,
		"false": false,
		"other": "yes",
	}

	assert.True(t, f.Bool("true"))
	assert.False(t, f.Bool("false"))
	assert.False(t, f.Bool("other"))
	assert.False(t, f.Bool("absent"))
}
