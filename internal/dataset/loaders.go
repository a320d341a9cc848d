package dataset

import (
	"encoding/csv"
	"errors"
	"image"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	_ "image/png"  // Register PNG decoder.
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/born-ml/phenomics/internal/parallel"
	"github.com/born-ml/phenomics/internal/validate"
)

// IPPN Ara2013 layout constants.
const (
	IPPNLabelFile   = "Leaf_counts.csv"
	IPPNImageSuffix = "_rgb.png"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Loader reads datasets from disk. Image headers are verified on Workers
// goroutines; zero means one per CPU.
type Loader struct {
	Workers int
}

func (l Loader) config() parallel.Config {
	cfg := parallel.DefaultConfig()
	if l.Workers > 0 {
		cfg.NumWorkers = l.Workers
	}
	return cfg
}

// checkImages verifies every path, reporting the first unreadable one in
// path order.
func (l Loader) checkImages(paths []string) error {
	return parallel.For(len(paths), func(i int) error {
		return checkImage(paths[i])
	}, l.config())
}

// FromDirectoryWithCSVLabels is Loader.FromDirectoryWithCSVLabels with one
// worker per CPU.
func FromDirectoryWithCSVLabels(imageDir, labelPath string, column int) (*Dataset, error) {
	return Loader{}.FromDirectoryWithCSVLabels(imageDir, labelPath, column)
}

// IPPNLeafCount is Loader.IPPNLeafCount with one worker per CPU.
func IPPNLeafCount(dir string) (*Dataset, error) {
	return Loader{}.IPPNLeafCount(dir)
}

// ListImages is Loader.ListImages with one worker per CPU.
func ListImages(dir string) ([]string, error) {
	return Loader{}.ListImages(dir)
}

// FromDirectoryWithCSVLabels pairs the images of imageDir, in sorted file
// name order, with the rows of the CSV file at labelPath. Label i is taken
// from the given column of row i.
//
// Fails with ErrValue when the directory holds no images, an image does not
// decode, the column is missing, or the image and label counts differ.
func (l Loader) FromDirectoryWithCSVLabels(imageDir, labelPath string, column int) (*Dataset, error) {
	if column < 0 {
		return nil, validate.Valuef("column", "must be non-negative, got %d", column)
	}

	images, err := l.ListImages(imageDir)
	if err != nil {
		return nil, err
	}

	rows, err := readCSV(labelPath)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(rows))
	for i, row := range rows {
		if column >= len(row) {
			return nil, validate.Valuef("labels", "%s row %d has no column %d", labelPath, i+1, column)
		}
		labels[i] = strings.TrimSpace(row[column])
	}

	if len(images) != len(labels) {
		return nil, validate.Valuef("labels", "%s has %d images but %s has %d labels",
			imageDir, len(images), labelPath, len(labels))
	}

	return &Dataset{Images: images, Labels: labels}, nil
}

// IPPNLeafCount loads the leaf counting dataset of the IPPN plant phenotyping
// challenge from dir: Leaf_counts.csv holds "<plant>,<count>" rows and each
// plant has a "<plant>_rgb.png" image next to it.
func (l Loader) IPPNLeafCount(dir string) (*Dataset, error) {
	rows, err := readCSV(filepath.Join(dir, IPPNLabelFile))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, validate.Valuef("labels", "%s is empty", IPPNLabelFile)
	}

	d := &Dataset{
		Images: make([]string, 0, len(rows)),
		Labels: make([]string, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) < 2 {
			return nil, validate.Valuef("labels", "%s row %d: expected <plant>,<count>", IPPNLabelFile, i+1)
		}
		d.Images = append(d.Images, filepath.Join(dir, strings.TrimSpace(row[0])+IPPNImageSuffix))
		d.Labels = append(d.Labels, strings.TrimSpace(row[1]))
	}
	if err := l.checkImages(d.Images); err != nil {
		return nil, err
	}

	// Leaf counts must be numeric.
	if _, err := d.RegressionLabels(); err != nil {
		return nil, err
	}
	return d, nil
}

// ListImages returns the sorted paths of the image files directly inside dir,
// verifying that each one decodes as an image.
func (l Loader) ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, validate.Valuef("image_dir", "cannot list %s: %v", dir, err)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, e.Name()))
	}
	if len(images) == 0 {
		return nil, validate.Valuef("image_dir", "%s contains no images", dir)
	}

	slices.Sort(images)
	if err := l.checkImages(images); err != nil {
		return nil, err
	}
	return images, nil
}

func isImageFile(name string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(name)))
}

// checkImage decodes only the image header.
func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return validate.Valuef("image", "cannot open %s: %v", path, err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return validate.Valuef("image", "%s is not a readable image: %v", path, err)
	}
	return nil
}

// readCSV returns the non-empty rows of a CSV file.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, validate.Valuef("label_file", "cannot open %s: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, validate.Valuef("label_file", "cannot parse %s: %v", path, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
