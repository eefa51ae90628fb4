package dfxml_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ostafen/reext/pkg/dfxml"
	"github.com/stretchr/testify/require"
)

func writeReport(t *testing.T, objs []dfxml.FileObject) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := dfxml.NewDFXMLWriter(&buf)

	err := w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              "reext",
			Version:              "test",
			ExecutionEnvironment: dfxml.GetExecEnv(),
		},
		Source: dfxml.Source{Directory: "/data/lost+found"},
	})
	require.NoError(t, err)

	for _, obj := range objs {
		require.NoError(t, w.WriteFileObject(obj))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReport_ReadBack(t *testing.T) {
	objs := []dfxml.FileObject{
		{
			Filename:         "/data/lost+found/#1234.jpg",
			OriginalFilename: "/data/lost+found/#1234",
			FileSize:         2048,
			Format:           "jpg",
			HashDigest:       dfxml.HashDigest{Type: dfxml.HashTypeXXH64, Value: "ef46db3751d8e999"},
		},
		{
			Filename:         "/data/lost+found/a&b.pdf",
			OriginalFilename: "/data/lost+found/a&b",
			FileSize:         10,
			Format:           "pdf",
			HashDigest:       dfxml.HashDigest{Type: dfxml.HashTypeXXH64, Value: "0123456789abcdef"},
		},
	}

	data := writeReport(t, objs)
	require.True(t, bytes.HasPrefix(data, []byte("<?xml")))
	require.Contains(t, string(data), `<dfxml xmloutputversion="1.0">`)
	require.Contains(t, string(data), "<directory>/data/lost+found</directory>")
	require.Equal(t, 1, strings.Count(string(data), "<dfxml"))

	read, err := dfxml.ReadFileObjects(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, read, len(objs))

	for i := range objs {
		require.Equal(t, objs[i].Filename, read[i].Filename)
		require.Equal(t, objs[i].OriginalFilename, read[i].OriginalFilename)
		require.Equal(t, objs[i].FileSize, read[i].FileSize)
		require.Equal(t, objs[i].Format, read[i].Format)
		require.Equal(t, objs[i].HashDigest, read[i].HashDigest)
	}
}

func TestReport_Empty(t *testing.T) {
	read, err := dfxml.ReadFileObjects(bytes.NewReader(writeReport(t, nil)))
	require.NoError(t, err)
	require.Empty(t, read)
}

func TestReport_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	w := dfxml.NewDFXMLWriter(&buf)
	require.NoError(t, w.WriteHeader(dfxml.DFXMLHeader{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
	}))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.WriteFileObject(dfxml.FileObject{Filename: fmt.Sprintf("f%d", i)})
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	read, err := dfxml.ReadFileObjects(&buf)
	require.NoError(t, err)
	require.Len(t, read, 50)
}

func TestReadFileObjects_Malformed(t *testing.T) {
	_, err := dfxml.ReadFileObjects(strings.NewReader("<dfxml><fileobject><filename>x</file"))
	require.Error(t, err)
}
