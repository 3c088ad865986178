package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/hrdash/internal/chart"
	"github.com/KaramelBytes/hrdash/internal/utils"
)

// WriteJSON writes the page, chart specifications included, as indented JSON.
func WriteJSON(w io.Writer, p *Page) error {
	b, err := utils.PrettyJSON(p)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// ExportCharts draws every chart of the page into dir, one file per panel,
// named r<row>c<col>-<title>.<format>. Charts that fail to draw are skipped
// and reported in the joined error; the rest are still written.
func ExportCharts(p *Page, dir string, format chart.Format, width int) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create charts dir: %w", err)
	}
	var written []string
	var errs []error
	for i, row := range p.Grid {
		for j, panel := range row {
			if panel.Chart == nil {
				continue
			}
			name := fmt.Sprintf("r%dc%d-%s.%s", i+1, j+1, utils.Slug(panelTitle(panel)), format)
			var buf bytes.Buffer
			if err := chart.Render(&buf, panel.Chart, format, width); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			path := filepath.Join(dir, name)
			if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			written = append(written, path)
		}
	}
	return written, errors.Join(errs...)
}
