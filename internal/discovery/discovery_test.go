package discovery_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/afero"

	"github.com/go-ports/sebas/internal/discovery"
)

// newTree returns an in-memory filesystem containing the given directories.
func newTree(c *qt.C, dirs ...string) afero.Fs {
	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		c.Assert(fs.MkdirAll(d, 0o755), qt.IsNil)
	}
	return fs
}

func TestRoots_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("nearest first then each ancestor", func(c *qt.C) {
		fs := newTree(c,
			"/home/u/.sebas",
			"/home/u/work/.sebas",
			"/home/u/work/proj/.sebas",
			"/home/u/work/proj/sub",
		)
		f := discovery.New(fs, "")

		roots, err := f.Roots("/home/u/work/proj/sub")
		c.Assert(err, qt.IsNil)
		c.Assert(roots, qt.DeepEquals, []string{
			"/home/u/work/proj/.sebas",
			"/home/u/work/.sebas",
			"/home/u/.sebas",
		})
	})

	c.Run("starting directory itself is included", func(c *qt.C) {
		fs := newTree(c, "/a/.sebas")
		roots, err := discovery.New(fs, "").Roots("/a")
		c.Assert(err, qt.IsNil)
		c.Assert(roots, qt.DeepEquals, []string{"/a/.sebas"})
	})

	c.Run("no stores in scope is an empty result", func(c *qt.C) {
		fs := newTree(c, "/a/b/c")
		roots, err := discovery.New(fs, "").Roots("/a/b/c")
		c.Assert(err, qt.IsNil)
		c.Assert(roots, qt.HasLen, 0)
	})

	c.Run("a marker file is not a store root", func(c *qt.C) {
		fs := newTree(c, "/a/b")
		c.Assert(afero.WriteFile(fs, "/a/b/.sebas", []byte("x"), 0o644), qt.IsNil)
		roots, err := discovery.New(fs, "").Roots("/a/b")
		c.Assert(err, qt.IsNil)
		c.Assert(roots, qt.HasLen, 0)
	})

	c.Run("custom marker", func(c *qt.C) {
		fs := newTree(c, "/a/.bookmarks", "/a/.sebas")
		roots, err := discovery.New(fs, ".bookmarks").Roots("/a")
		c.Assert(err, qt.IsNil)
		c.Assert(roots, qt.DeepEquals, []string{"/a/.bookmarks"})
	})

	c.Run("walk never creates directories", func(c *qt.C) {
		fs := newTree(c, "/x/y")
		_, err := discovery.New(fs, "").Roots("/x/y")
		c.Assert(err, qt.IsNil)
		ok, err := afero.DirExists(fs, "/x/y/.sebas")
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsFalse)
	})
}

func TestNearest_HappyPath(t *testing.T) {
	c := qt.New(t)

	fs := newTree(c, "/p/.sebas", "/p/q/.sebas", "/p/q/r")
	f := discovery.New(fs, "")

	root, ok, err := f.Nearest("/p/q/r")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(root, qt.Equals, "/p/q/.sebas")

	_, ok, err = discovery.New(newTree(c, "/z"), "").Nearest("/z")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}
