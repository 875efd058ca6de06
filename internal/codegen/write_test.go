package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src", "router", "routes.gen.ts")

	changed, err := WriteFile(path, []byte("one"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !changed {
		t.Error("expected first write to report a change")
	}

	changed, err = WriteFile(path, []byte("one"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if changed {
		t.Error("expected identical content to be skipped")
	}

	changed, err = WriteFile(path, []byte("two"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !changed {
		t.Error("expected new content to report a change")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".routes.gen.ts.*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestWriteFileConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.json")

	contents := map[string]bool{}
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		data := fmt.Sprintf(`{"writer": %d}`, i)
		contents[data] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := WriteFile(path, []byte(data)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !contents[string(got)] {
		t.Errorf("file holds a torn write: %q", got)
	}
}
