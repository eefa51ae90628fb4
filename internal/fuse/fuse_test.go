//go:build linux

package fuse

import (
	"context"
	"testing"

	"bazil.org/fuse"
	"github.com/stretchr/testify/require"
)

func TestRecoverFS_InodesAgree(t *testing.T) {
	entries := []FileEntry{
		{Name: "z.jpg", Path: "/d/z", Size: 1, Inode: 2},
		{Name: "a.pdf", Path: "/d/a", Size: 2, Inode: 3},
		{Name: "m", Path: "/d/m", Size: 3, Inode: 4},
	}

	root, err := NewRecoverFS(entries).Root()
	require.NoError(t, err)
	dir := root.(*Dir)

	ctx := context.Background()

	var attr fuse.Attr
	require.NoError(t, dir.Attr(ctx, &attr))
	require.Equal(t, uint64(rootInode), attr.Inode)

	dirents, err := dir.ReadDirAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a.pdf", "m", "z.jpg"}, []string{dirents[0].Name, dirents[1].Name, dirents[2].Name})

	for _, de := range dirents {
		node, err := dir.Lookup(ctx, de.Name)
		require.NoError(t, err)

		var attr fuse.Attr
		require.NoError(t, node.Attr(ctx, &attr))
		require.Equal(t, de.Inode, attr.Inode, de.Name)
	}

	// listing again does not renumber entries
	again, err := dir.ReadDirAll(ctx)
	require.NoError(t, err)
	require.Equal(t, dirents, again)

	_, err = dir.Lookup(ctx, "missing")
	require.Equal(t, fuse.ENOENT, err)
}
