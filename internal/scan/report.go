package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/ostafen/reext/internal/env"
	"github.com/ostafen/reext/pkg/dfxml"
)

type reportWriter struct {
	f *os.File
	w *dfxml.DFXMLWriter
}

func createReport(path, dir string, recursive bool) (*reportWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report %q: %w", path, err)
	}

	w := dfxml.NewDFXMLWriter(f)
	err = w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{
			Directory: absPath(dir),
			Recursive: recursive,
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &reportWriter{f: f, w: w}, nil
}

// Add records a renamed file, hashing its content.
func (r *reportWriter) Add(res Result) error {
	digest, err := hashFile(res.NewPath)
	if err != nil {
		return err
	}

	return r.w.WriteFileObject(dfxml.FileObject{
		Filename:         absPath(res.NewPath),
		OriginalFilename: absPath(res.Path),
		FileSize:         uint64(res.Size),
		Format:           string(res.Ext),
		HashDigest: dfxml.HashDigest{
			Type:  dfxml.HashTypeXXH64,
			Value: digest,
		},
	})
}

func (r *reportWriter) Close() error {
	if err := r.w.Close(); err != nil {
		r.f.Close()
		return err
	}
	return r.f.Close()
}

var hashFile = HashFile

// HashFile returns the hex encoded xxHash64 digest of the content of path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, bufio.NewReaderSize(f, 1024*1024)); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
