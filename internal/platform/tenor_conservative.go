package platform

// TenorConservative uploads two artifacts per batch and broadcasts tags into
// five slots. Smaller batches keep the file dialog selection short and the
// extra slot covers tag-field layouts that shift when fewer previews render.
type TenorConservative struct{}

func init() {
	Register(&TenorConservative{})
}

func (t *TenorConservative) GetName() string {
	return "tenor-conservative"
}

func (t *TenorConservative) GetUploadURL() string {
	return "https://tenor.com/gif-maker"
}

func (t *TenorConservative) GetBatchSize() int {
	return 2
}

func (t *TenorConservative) GetTagSlots() int {
	return 5 // 4 fields plus 1 safety slot
}

func (t *TenorConservative) GetSafetySlots() int {
	return 1
}

func (t *TenorConservative) GetTagCount() int {
	return 14
}
