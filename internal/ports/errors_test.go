package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLoadError tests message formatting and unwrapping of LoadError.
func TestLoadError(t *testing.T) {
	t.Run("with collection", func(t *testing.T) {
		err := NewLoadError("fixtures/sales", "products", ErrMalformedSource)

		assert.Equal(t, "load error: source=fixtures/sales, collection=products, err=malformed source", err.Error())
		assert.Equal(t, "products", err.Collection)
		assert.True(t, errors.Is(err, ErrMalformedSource))
	})

	t.Run("without collection", func(t *testing.T) {
		err := NewLoadError("dataset.json", "", ErrSourceNotFound)

		assert.Equal(t, "load error: source=dataset.json, err=source not found", err.Error())
		assert.True(t, errors.Is(err, ErrSourceNotFound))
	})
}

func TestWriteError(t *testing.T) {
	err := NewWriteError("xml", ErrUnsupportedFormat)

	assert.Equal(t, "write error: format=xml, err=unsupported format", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Equal(t, ErrUnsupportedFormat, errors.Unwrap(err))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("report.top_products", ErrConfigNotFound)

	assert.Equal(t, "config error: key=report.top_products, err=configuration not found", err.Error())
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestErrorWrapping(t *testing.T) {
	baseErr := errors.New("disk on fire")
	loadErr := NewLoadError("dataset.json", "", baseErr)
	wrapped := NewConfigError("data", loadErr)

	var target *LoadError
	assert.True(t, errors.As(wrapped, &target), "Should find LoadError in chain")
	assert.Equal(t, "dataset.json", target.Source)
	assert.True(t, errors.Is(wrapped, baseErr), "Should match base error through two layers")
}
