package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "Config.toml").
			Build()

		require.Equal(t, CategoryConfig, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		require.Equal(t, "Config.toml", file)
	})

	t.Run("Error string names context", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := MalformedPage("missing @Meta marker").WithPath("blog/a.md").WithCause(cause).Build()
		require.Equal(t, "[malformed_page] missing @Meta marker path=blog/a.md: boom", err.Error())
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		base := InvalidMetadata("bad date").WithPath("a.md").Build()
		wrapped := fmt.Errorf("walk blog: %w", base)

		require.True(t, IsClassified(wrapped))
		require.True(t, HasCategory(wrapped, CategoryInvalidMetadata))
		require.True(t, IsPageError(wrapped))
		require.Equal(t, CategoryInvalidMetadata, GetCategory(wrapped))
		require.True(t, base.IsFatal())
	})

	t.Run("Unclassified defaults", func(t *testing.T) {
		err := stderrors.New("plain")
		require.False(t, IsClassified(err))
		require.False(t, IsPageError(err))
		require.Equal(t, CategoryInternal, GetCategory(err))
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := PathError("collision").Build()
		derived := base.WithContext("path", "x.html")
		_, ok := base.Context().Get("path")
		require.False(t, ok)
		p, _ := derived.Context().GetString("path")
		require.Equal(t, "x.html", p)
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrap keeps cause", func(t *testing.T) {
		originalErr := stderrors.New("permission denied")
		err := WrapError(originalErr, CategoryCopy, "copy failed").
			WithContext("source", "a.png").
			WithContext("destination", "public/a.png").
			Build()

		require.ErrorIs(t, err, originalErr)
		require.Equal(t, SeverityError, err.Severity())
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig},
			{"MalformedPage", MalformedPage("test"), CategoryMalformedPage},
			{"InvalidMetadata", InvalidMetadata("test"), CategoryInvalidMetadata},
			{"PathError", PathError("test"), CategoryPath},
			{"CopyError", CopyError("test"), CategoryCopy},
			{"IOError", IOError("test"), CategoryIO},
			{"TemplateError", TemplateError("test"), CategoryTemplate},
			{"InternalError", InternalError("test"), CategoryInternal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				require.Equal(t, tt.category, err.Category())
				require.Equal(t, SeverityFatal, err.Severity())
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	ctx1 := make(ErrorContext)
	ctx1 = ctx1.Set("key1", "value1")
	ctx1 = ctx1.Set("shared", "original")

	ctx2 := make(ErrorContext)
	ctx2 = ctx2.Set("key2", 2)
	ctx2 = ctx2.Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	v1, _ := merged.GetString("key1")
	v2, _ := merged.Get("key2")
	shared, _ := merged.GetString("shared")
	require.Equal(t, "value1", v1)
	require.Equal(t, 2, v2)
	require.Equal(t, "overridden", shared)

	_, ok := merged.GetString("key2")
	require.False(t, ok, "non-string values are not returned by GetString")
}
