package pdf

// Info summarizes a document and its Info dictionary.
type Info struct {
	PageCount    int    `json:"page_count"`
	PageSizes    []Size `json:"page_sizes"`
	Version      string `json:"version"`
	Encrypted    bool   `json:"encrypted"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Keywords     string `json:"keywords,omitempty"`
	Creator      string `json:"creator,omitempty"`
	Producer     string `json:"producer,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	ModDate      string `json:"mod_date,omitempty"`
}

// Info reports page layout and document metadata.
func (d *Document) Info() (*Info, error) {
	sizes, err := d.PageSizes()
	if err != nil {
		return nil, err
	}

	x := d.ctx.XRefTable
	return &Info{
		PageCount:    d.PageCount(),
		PageSizes:    sizes,
		Version:      d.ctx.VersionString(),
		Encrypted:    x.Encrypt != nil,
		Title:        x.Title,
		Author:       x.Author,
		Subject:      x.Subject,
		Keywords:     x.Keywords,
		Creator:      x.Creator,
		Producer:     x.Producer,
		CreationDate: x.CreationDate,
		ModDate:      x.ModDate,
	}, nil
}
