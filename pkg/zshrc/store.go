package zshrc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/zshkit/pkg/errors"
	"github.com/arthur-debert/zshkit/pkg/logging"
	"github.com/arthur-debert/zshkit/pkg/users"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// stampWidth is the length of a backup suffix: seconds plus microseconds.
const stampWidth = 20

// Stamp renders t in UTC as a fixed-width numeric backup suffix.
// Lexicographic order of stamps is chronological order, also across
// daylight saving changes.
func Stamp(t time.Time) string {
	t = t.UTC()
	return t.Format("20060102150405") + fmt.Sprintf("%06d", t.Nanosecond()/int(time.Microsecond))
}

// Store reads and writes configuration files and their backups.
type Store struct {
	FS afero.Fs
	// Owner, when set, receives ownership of every file and directory the
	// store creates. Used when root provisions another account.
	Owner *users.Identity
	// Infix separates the file name from the stamp: ".zshrc.backup-2025...".
	Infix string
	Now   func() time.Time

	logger zerolog.Logger
}

// NewStore returns a store over fs using the given backup infix.
func NewStore(fs afero.Fs, infix string) *Store {
	return &Store{FS: fs, Infix: infix, Now: time.Now, logger: logging.GetLogger("zshrc")}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Exists reports whether path is present.
func (s *Store) Exists(path string) bool {
	ok, _ := afero.Exists(s.FS, path)
	return ok
}

// Load reads the configuration file. A missing file is ErrZshrcMissing.
func (s *Store) Load(path string) (*Document, error) {
	data, err := afero.ReadFile(s.FS, path)
	if err != nil {
		if !s.Exists(path) {
			return nil, errors.Newf(errors.ErrZshrcMissing,
				"%s not found: the framework installer did not create it", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	return Parse(string(data)), nil
}

// Save writes doc over path, keeping the file's permissions.
func (s *Store) Save(path string, doc *Document) error {
	mode := os.FileMode(0644)
	if info, err := s.FS.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(s.FS, path, []byte(doc.String()), mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	s.logger.Debug().Str("path", path).Msg("configuration saved")
	return nil
}

// Backup copies path to a new sibling named path+Infix+stamp and returns
// the backup's path. Two backups in the same microsecond get distinct,
// still ordered, stamps.
func (s *Store) Backup(path string) (string, error) {
	data, err := afero.ReadFile(s.FS, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot read %s for backup", path)
	}
	info, err := s.FS.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot stat %s", path)
	}

	t := s.now()
	target := path + s.Infix + Stamp(t)
	for s.Exists(target) {
		t = t.Add(time.Microsecond)
		target = path + s.Infix + Stamp(t)
	}

	if err := afero.WriteFile(s.FS, target, data, info.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot write backup %s", target)
	}
	if err := s.chown(target); err != nil {
		return "", err
	}
	s.logger.Info().Str("path", path).Str("backup", target).Msg("backup created")
	return target, nil
}

// Backups lists the backups of path, oldest first.
func (s *Store) Backups(path string) ([]string, error) {
	dir := filepath.Dir(path)
	prefix := filepath.Base(path) + s.Infix

	entries, err := afero.ReadDir(s.FS, dir)
	if err != nil {
		if exists, _ := afero.DirExists(s.FS, dir); !exists {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
	}

	var stamps []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if stamp := strings.TrimPrefix(e.Name(), prefix); isStamp(stamp) {
			stamps = append(stamps, stamp)
		}
	}
	sort.Strings(stamps)

	out := make([]string, len(stamps))
	for i, stamp := range stamps {
		out[i] = filepath.Join(dir, prefix+stamp)
	}
	return out, nil
}

// LatestBackup returns the most recent backup of path.
func (s *Store) LatestBackup(path string) (string, bool, error) {
	backups, err := s.Backups(path)
	if err != nil || len(backups) == 0 {
		return "", false, err
	}
	return backups[len(backups)-1], true, nil
}

// Restore moves backup over path. The backup is consumed.
func (s *Store) Restore(path, backup string) error {
	if err := s.FS.Rename(backup, path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot restore %s from %s", path, backup)
	}
	s.logger.Info().Str("path", path).Str("backup", backup).Msg("configuration restored")
	return nil
}

// Remove deletes path and reports whether it existed.
func (s *Store) Remove(path string) (bool, error) {
	if !s.Exists(path) {
		return false, nil
	}
	if err := s.FS.Remove(path); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot remove %s", path)
	}
	return true, nil
}

// WriteNew creates path with content unless it already exists, creating
// parent directories as needed. It reports whether the file was written.
func (s *Store) WriteNew(path string, content []byte) (bool, error) {
	if s.Exists(path) {
		return false, nil
	}
	if err := s.mkdirAll(filepath.Dir(path)); err != nil {
		return false, err
	}
	if err := afero.WriteFile(s.FS, path, content, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	if err := s.chown(path); err != nil {
		return false, err
	}
	return true, nil
}

// mkdirAll creates dir and hands each newly created level to Owner.
func (s *Store) mkdirAll(dir string) error {
	var created []string
	for d := dir; !s.Exists(d); d = filepath.Dir(d) {
		created = append(created, d)
		if d == filepath.Dir(d) {
			break
		}
	}
	if err := s.FS.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
	}
	for _, d := range created {
		if err := s.chown(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) chown(path string) error {
	if s.Owner == nil {
		return nil
	}
	if err := s.FS.Chown(path, s.Owner.UID, s.Owner.GID); err != nil {
		return errors.Wrapf(err, errors.ErrPermission, "cannot hand %s to %s", path, s.Owner.Name)
	}
	return nil
}

func isStamp(s string) bool {
	if len(s) != stampWidth {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
