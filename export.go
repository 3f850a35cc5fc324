package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var errOverwriteInput = errors.New("экспорт перезаписал бы входной файл")

// safeFileName делает из имени трека (оно приходит из <metadata><name>)
// одно имя файла без каталогов и "..".
func safeFileName(name, fallback string) string {
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	name = strings.ReplaceAll(name, "..", "_")
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}

// sameAsInput — указывает ли out на один из входных файлов
// (сравнение через os.SameFile, так что ловит и ссылки, и ./ride.gpx)
func sameAsInput(out string, inputs []string) (string, bool) {
	oi, err := os.Stat(out)
	if err != nil {
		return "", false
	}
	for _, in := range inputs {
		ii, err := os.Stat(in)
		if err != nil {
			continue
		}
		if os.SameFile(oi, ii) {
			return in, true
		}
	}
	return "", false
}

// writeFileAtomic пишет во временный .part и переименовывает;
// если rename не вышел (другой диск и т.п.) — копирует.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		if err := copyFile(tmp, path); err != nil {
			return fmt.Errorf("rename/copy %s: %w", path, err)
		}
		_ = os.Remove(tmp)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
