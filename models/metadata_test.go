package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataPatchApply(t *testing.T) {
	favorite := true
	tags := []string{"work"}
	ref := FileRef{URL: "https://files.example.com/a.pdf", Name: "a.pdf"}

	current := Metadata{
		Tags:     []string{"home", "network"},
		Favorite: false,
		FileRef:  &FileRef{URL: "https://files.example.com/old.pdf"},
	}

	tests := []struct {
		name  string
		patch MetadataPatch
		want  Metadata
	}{
		{
			name:  "empty patch changes nothing",
			patch: MetadataPatch{},
			want:  current,
		},
		{
			name:  "set favorite leaves the rest",
			patch: MetadataPatch{Favorite: &favorite},
			want: Metadata{
				Tags:     []string{"home", "network"},
				Favorite: true,
				FileRef:  &FileRef{URL: "https://files.example.com/old.pdf"},
			},
		},
		{
			name:  "replace tags",
			patch: MetadataPatch{Tags: &tags},
			want: Metadata{
				Tags:    []string{"work"},
				FileRef: &FileRef{URL: "https://files.example.com/old.pdf"},
			},
		},
		{
			name:  "clear tags",
			patch: MetadataPatch{ClearTags: true},
			want: Metadata{
				FileRef: &FileRef{URL: "https://files.example.com/old.pdf"},
			},
		},
		{
			name:  "clear wins over set",
			patch: MetadataPatch{Tags: &tags, ClearTags: true},
			want: Metadata{
				FileRef: &FileRef{URL: "https://files.example.com/old.pdf"},
			},
		},
		{
			name:  "replace file ref",
			patch: MetadataPatch{FileRef: &ref},
			want: Metadata{
				Tags:    []string{"home", "network"},
				FileRef: &FileRef{URL: "https://files.example.com/a.pdf", Name: "a.pdf"},
			},
		},
		{
			name:  "clear file ref",
			patch: MetadataPatch{ClearFileRef: true},
			want: Metadata{
				Tags: []string{"home", "network"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Apply(current))
		})
	}
}

func TestMetadataPatchApplyCopies(t *testing.T) {
	tags := []string{"a"}
	patch := MetadataPatch{Tags: &tags}

	got := patch.Apply(Metadata{})
	tags[0] = "mutated"

	assert.Equal(t, []string{"a"}, got.Tags, "applied metadata must not alias the patch slice")
}

func TestMetadataPatchEmpty(t *testing.T) {
	favorite := false

	assert.True(t, MetadataPatch{}.Empty())
	assert.False(t, MetadataPatch{Favorite: &favorite}.Empty())
	assert.False(t, MetadataPatch{ClearTags: true}.Empty())
	assert.False(t, MetadataPatch{ClearFileRef: true}.Empty())
}

func TestItemTypeValid(t *testing.T) {
	for _, typ := range []ItemType{ItemTypePassword, ItemTypeNote, ItemTypeCard, ItemTypeIdentity, ItemTypeDocument} {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, ItemType("totp").Valid())
	assert.False(t, ItemType("").Valid())
}
