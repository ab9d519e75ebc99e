package domain

import "errors"

// NoSelection is the CurrentIndex sentinel for an empty selection.
const NoSelection = -1

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptySource     = errors.New("media element has no source")
)

// Playlist is an ordered sequence of media elements plus a pointer to the
// element currently being played. CurrentIndex is either NoSelection or a
// valid index into Items; every mutation below preserves that.
type Playlist struct {
	Items        []MediaElement `json:"items"`
	CurrentIndex int            `json:"currentIndex"`
}

func (p Playlist) clone() Playlist {
	return Playlist{
		Items:        append([]MediaElement(nil), p.Items...),
		CurrentIndex: p.CurrentIndex,
	}
}

// Validate rejects playlists that would break playback: a pointer outside
// the items, or an item without a single source URL.
func (p Playlist) Validate() error {
	if p.CurrentIndex < NoSelection || p.CurrentIndex >= len(p.Items) {
		return ErrIndexOutOfRange
	}

	for _, item := range p.Items {
		if len(item.Src) == 0 {
			return ErrEmptySource
		}
	}

	return nil
}

// Normalize clamps an out-of-range pointer instead of rejecting it, for
// callers that replace the playlist wholesale.
func (p Playlist) Normalize() Playlist {
	p = p.clone()
	if len(p.Items) == 0 || p.CurrentIndex < NoSelection {
		p.CurrentIndex = NoSelection
	} else if p.CurrentIndex >= len(p.Items) {
		p.CurrentIndex = len(p.Items) - 1
	}

	return p
}

// Insert appends an item. The pointer is unaffected.
func (p Playlist) Insert(item MediaElement) Playlist {
	p = p.clone()
	p.Items = append(p.Items, item)
	return p
}

// Delete removes the item at index and rebases the pointer: a pointer past
// the removed item shifts left, a pointer at the removed item clamps to the
// new end (NoSelection once the list is empty).
func (p Playlist) Delete(index int) (Playlist, error) {
	if index < 0 || index >= len(p.Items) {
		return p, ErrIndexOutOfRange
	}

	p = p.clone()
	p.Items = append(p.Items[:index], p.Items[index+1:]...)

	switch {
	case p.CurrentIndex == index:
		if p.CurrentIndex > len(p.Items)-1 {
			p.CurrentIndex = len(p.Items) - 1
		}
	case p.CurrentIndex > index:
		p.CurrentIndex--
	}

	return p, nil
}

// Move removes the item at from and reinserts it at to, rebasing the
// pointer so it keeps naming the same item.
func (p Playlist) Move(from, to int) (Playlist, error) {
	if from < 0 || from >= len(p.Items) || to < 0 || to >= len(p.Items) {
		return p, ErrIndexOutOfRange
	}

	p = p.clone()
	item := p.Items[from]
	p.Items = append(p.Items[:from], p.Items[from+1:]...)
	p.Items = append(p.Items[:to], append([]MediaElement{item}, p.Items[to:]...)...)

	switch {
	case p.CurrentIndex == from:
		p.CurrentIndex = to
	case from < p.CurrentIndex && p.CurrentIndex <= to:
		p.CurrentIndex--
	case to <= p.CurrentIndex && p.CurrentIndex < from:
		p.CurrentIndex++
	}

	return p, nil
}

// SelectIndex points playback at an existing item.
func (p Playlist) SelectIndex(index int) (Playlist, error) {
	if index < 0 || index >= len(p.Items) {
		return p, ErrIndexOutOfRange
	}

	p = p.clone()
	p.CurrentIndex = index
	return p, nil
}

// Equal reports structural equality, the basis of echo suppression.
func (p Playlist) Equal(other Playlist) bool {
	if p.CurrentIndex != other.CurrentIndex || len(p.Items) != len(other.Items) {
		return false
	}

	for i := range p.Items {
		if !p.Items[i].equal(other.Items[i]) {
			return false
		}
	}

	return true
}

func (m MediaElement) equal(other MediaElement) bool {
	if m.Title != other.Title || m.Thumbnail != other.Thumbnail {
		return false
	}
	if len(m.Src) != len(other.Src) || len(m.Sub) != len(other.Sub) {
		return false
	}
	for i := range m.Src {
		if m.Src[i] != other.Src[i] {
			return false
		}
	}
	for i := range m.Sub {
		if m.Sub[i] != other.Sub[i] {
			return false
		}
	}

	return true
}
