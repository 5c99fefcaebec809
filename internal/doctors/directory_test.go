package doctors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDirectoryServesDemoDataset(t *testing.T) {
	d := NewMemoryDirectory()

	list, err := d.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Dr. Sarah Johnson", list[0].Name)

	for _, doc := range list {
		assert.NotEmpty(t, doc.ID)
		assert.NotEmpty(t, doc.Specialty)
		assert.NotEmpty(t, doc.WorkStart)
		assert.NotEmpty(t, doc.WorkEnd)
	}
}

func TestMemoryDirectoryGet(t *testing.T) {
	d := NewMemoryDirectory()
	ctx := context.Background()

	doc, err := d.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", doc.Name)

	_, err = d.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestMemoryDirectoryWithExplicitList(t *testing.T) {
	d := NewMemoryDirectoryWith([]Doctor{
		{ID: "x", Name: "Dr. Test", WorkStart: "8:00 AM", WorkEnd: "12:00 PM"},
	})

	list, err := d.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dr. Test", list[0].Name)
}

func TestMemoryDirectoryListReturnsCopy(t *testing.T) {
	d := NewMemoryDirectory()
	ctx := context.Background()

	first, err := d.List(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := d.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Sarah Johnson", second[0].Name)
}
