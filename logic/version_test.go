package logic

import (
	"testing"

	"github.com/matryer/is"
)

func TestVersion(t *testing.T) {
	t.Run("valid version", func(t *testing.T) {
		is := is.New(t)
		valid := IsVersionCompatible("v0.2.1-testing")
		is.Equal(valid, true)
	})
	t.Run("dev version", func(t *testing.T) {
		is := is.New(t)
		valid := IsVersionCompatible("dev")
		is.Equal(valid, true)
	})
	t.Run("invalid version", func(t *testing.T) {
		is := is.New(t)
		valid := IsVersionCompatible("v0.0.2-beta")
		is.Equal(valid, false)
	})
	t.Run("no version", func(t *testing.T) {
		is := is.New(t)
		valid := IsVersionCompatible("testing")
		is.Equal(valid, false)
	})
	t.Run("incomplete version", func(t *testing.T) {
		is := is.New(t)
		valid := IsVersionCompatible("0.1")
		is.Equal(valid, true)
	})
}

func TestCleanVersion(t *testing.T) {
	t.Run("v prefix", func(t *testing.T) {
		is := is.New(t)
		is.Equal(CleanVersion("v0.2.0"), "0.2.0")
	})
	t.Run("surrounding junk", func(t *testing.T) {
		is := is.New(t)
		is.Equal(CleanVersion(" \"0.2.0\", "), "0.2.0")
	})
	t.Run("doubled dots", func(t *testing.T) {
		is := is.New(t)
		is.Equal(CleanVersion("0..2..0"), "0.2.0")
	})
	t.Run("empty", func(t *testing.T) {
		is := is.New(t)
		is.Equal(CleanVersion(""), "")
	})
}
