package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func element(name string) MediaElement {
	return MediaElement{
		Src:   []Source{{Src: "https://example.com/" + name + ".mp4", Resolution: "1080p"}},
		Title: name,
	}
}

func playlistOf(current int, names ...string) Playlist {
	items := make([]MediaElement, 0, len(names))
	for _, name := range names {
		items = append(items, element(name))
	}

	return Playlist{Items: items, CurrentIndex: current}
}

func titles(p Playlist) []string {
	out := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, item.Title)
	}

	return out
}

func TestPlaylistMove(t *testing.T) {
	// moving A past the current item keeps the pointer on C
	p := playlistOf(2, "A", "B", "C", "D")

	moved, err := p.Move(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D", "A"}, titles(moved))
	assert.Equal(t, 1, moved.CurrentIndex)

	// moving the current item carries the pointer with it
	moved, err = p.Move(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D"}, titles(moved))
	assert.Equal(t, 0, moved.CurrentIndex)

	// moving an item from behind to ahead of the pointer shifts it right
	moved, err = p.Move(3, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D", "B", "C"}, titles(moved))
	assert.Equal(t, 3, moved.CurrentIndex)

	// single-element move is a no-op
	single := playlistOf(0, "A")
	moved, err = single.Move(0, 0)
	require.NoError(t, err)
	assert.True(t, single.Equal(moved))

	_, err = p.Move(0, 4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPlaylistDelete(t *testing.T) {
	p := playlistOf(2, "A", "B", "C")

	p, err := p.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles(p))
	assert.Equal(t, 1, p.CurrentIndex)

	p, err = p.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, titles(p))
	assert.Equal(t, 0, p.CurrentIndex)

	p, err = p.Delete(0)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, NoSelection, p.CurrentIndex)

	_, err = p.Delete(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPlaylistDeleteBeforeCurrent(t *testing.T) {
	p := playlistOf(2, "A", "B", "C")

	p, err := p.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentIndex)
	assert.Equal(t, "C", p.Items[p.CurrentIndex].Title)
}

func TestPlaylistInsertAndSelect(t *testing.T) {
	p := Playlist{Items: []MediaElement{}, CurrentIndex: NoSelection}

	p = p.Insert(element("A"))
	assert.Equal(t, NoSelection, p.CurrentIndex)

	p, err := p.SelectIndex(0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentIndex)

	_, err = p.SelectIndex(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = p.SelectIndex(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

// TestPlaylistPointerInvariant runs random mutation sequences and checks the
// pointer always stays NoSelection or a valid index, and keeps naming the
// same item across moves.
func TestPlaylistPointerInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 100; run++ {
		p := Playlist{Items: []MediaElement{}, CurrentIndex: NoSelection}
		next := 0

		for op := 0; op < 200; op++ {
			var current string
			if p.CurrentIndex != NoSelection {
				current = p.Items[p.CurrentIndex].Title
			}

			switch rng.Intn(4) {
			case 0:
				p = p.Insert(element(fmt.Sprintf("item-%d", next)))
				next++
			case 1:
				if len(p.Items) > 0 {
					idx := rng.Intn(len(p.Items))
					if idx == p.CurrentIndex {
						current = ""
					}
					var err error
					p, err = p.Delete(idx)
					require.NoError(t, err)
				}
			case 2:
				if len(p.Items) > 0 {
					var err error
					p, err = p.Move(rng.Intn(len(p.Items)), rng.Intn(len(p.Items)))
					require.NoError(t, err)
				}
			case 3:
				if len(p.Items) > 0 {
					var err error
					p, err = p.SelectIndex(rng.Intn(len(p.Items)))
					require.NoError(t, err)
					current = p.Items[p.CurrentIndex].Title
				}
			}

			require.GreaterOrEqual(t, p.CurrentIndex, NoSelection)
			require.Less(t, p.CurrentIndex, len(p.Items))
			if len(p.Items) == 0 {
				require.Equal(t, NoSelection, p.CurrentIndex)
			}
			if current != "" && p.CurrentIndex != NoSelection {
				require.Equal(t, current, p.Items[p.CurrentIndex].Title)
			}
		}
	}
}

func TestPlaylistNormalize(t *testing.T) {
	p := playlistOf(5, "A", "B")
	assert.Equal(t, 1, p.Normalize().CurrentIndex)

	p = playlistOf(-7, "A", "B")
	assert.Equal(t, NoSelection, p.Normalize().CurrentIndex)

	empty := Playlist{CurrentIndex: 3}
	assert.Equal(t, NoSelection, empty.Normalize().CurrentIndex)
}

func TestPlaylistValidate(t *testing.T) {
	p := playlistOf(0, "A")
	require.NoError(t, p.Validate())

	p.CurrentIndex = 1
	assert.ErrorIs(t, p.Validate(), ErrIndexOutOfRange)

	p = Playlist{Items: []MediaElement{{Title: "no sources"}}, CurrentIndex: NoSelection}
	assert.ErrorIs(t, p.Validate(), ErrEmptySource)
}

func TestPlaylistEqual(t *testing.T) {
	a := playlistOf(1, "A", "B")
	b := playlistOf(1, "A", "B")
	assert.True(t, a.Equal(b))

	b.CurrentIndex = 0
	assert.False(t, a.Equal(b))

	b = playlistOf(1, "A", "C")
	assert.False(t, a.Equal(b))

	// applying an identical value twice stays equal
	assert.True(t, a.Equal(a.Normalize()))
}
