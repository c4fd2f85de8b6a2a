package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// CheckDirResult — результат проверки одного файла из директории.
type CheckDirResult struct {
	Path   string
	Result *CheckResult
	Err    error
}

// ListAveFiles возвращает отсортированный список всех *.ave файлов.
func ListAveFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".ave") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir гонит каждый файл через полный pipeline в jobs горутин.
// Каждая компиляция независима: свой интернер, реестр и таблица символов.
// events может быть nil; канал закрывает вызывающий после возврата.
func CheckDir(ctx context.Context, dir string, maxDiagnostics, jobs int, events chan<- Event) ([]CheckDirResult, error) {
	files, err := ListAveFiles(dir)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	emit := func(ev Event) {
		if events != nil {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
	}

	results := make([]CheckDirResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(Event{File: path, Stage: StageLex, Status: StatusWorking})
			res, err := Check(path, maxDiagnostics)
			results[i] = CheckDirResult{Path: path, Result: res, Err: err}

			status := StatusDone
			if err != nil || res.HasError() {
				status = StatusError
			}
			emit(Event{File: path, Stage: StageCheck, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
