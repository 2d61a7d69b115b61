package editor

import "github.com/veles-works/ems-console/internal/emsapi"

// PictureDisposition is the fate of the profile picture for the current
// edit session. It maps to exactly one submission behavior: Unchanged
// omits the field, Replaced attaches the new file, Cleared sends an
// explicit empty value so the server deletes the stored picture.
type PictureDisposition int

const (
	// PictureUnchanged means the user never touched the picture control.
	PictureUnchanged PictureDisposition = iota
	// PictureReplaced means a new file was selected.
	PictureReplaced
	// PictureCleared means an existing picture was removed without a
	// replacement.
	PictureCleared
)

func (d PictureDisposition) String() string {
	switch d {
	case PictureReplaced:
		return "replaced"
	case PictureCleared:
		return "cleared"
	default:
		return "unchanged"
	}
}

// pictureState tracks the tri-state explicitly instead of inferring it
// from nullable preview fields.
type pictureState struct {
	disposition PictureDisposition
	upload      *emsapi.Upload
	existingURL string
}

func pictureFromSnapshot(existingURL string) pictureState {
	return pictureState{disposition: PictureUnchanged, existingURL: existingURL}
}

// replace selects a new file, discarding any earlier removal.
func (p *pictureState) replace(upload emsapi.Upload) {
	p.disposition = PictureReplaced
	p.upload = &upload
}

// clear removes the current selection. Only a session that started with
// a stored picture moves to Cleared; otherwise there is nothing to
// delete server-side and the state stays Unchanged.
func (p *pictureState) clear() {
	p.upload = nil
	if p.existingURL != "" {
		p.disposition = PictureCleared
		return
	}
	p.disposition = PictureUnchanged
}
