package platform

// Tenor is the default Tenor GIF Maker target: three artifacts per batch,
// three tag slots plus one safety slot.
type Tenor struct{}

func init() {
	Register(&Tenor{})
}

func (t *Tenor) GetName() string {
	return "tenor"
}

func (t *Tenor) GetUploadURL() string {
	return "https://tenor.com/gif-maker"
}

func (t *Tenor) GetBatchSize() int {
	return 3
}

func (t *Tenor) GetTagSlots() int {
	return 4 // 3 fields plus 1 safety slot
}

func (t *Tenor) GetSafetySlots() int {
	return 1
}

func (t *Tenor) GetTagCount() int {
	return 14
}
