package gconf

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

type ReadStore interface {
	Get([]byte) ([]byte, error)
}

type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is a singleton record owned by one package.
type Configuration interface {
	Validate() error
}

// confKey is outside of every bucket prefix.
func confKey(pkg string) []byte {
	return append([]byte("_c:"), pkg...)
}

// Save validates src and stores it as the configuration of pkg, replacing
// any previous one.
func Save(db Store, pkg string, src Configuration) error {
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := orm.Marshal(src)
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	if err := db.Set(confKey(pkg), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "save %s configuration: %s", pkg, err)
	}
	return nil
}

// Load reads the configuration of pkg into dst. It returns ErrNotFound if
// nothing was saved yet.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(confKey(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "load %s configuration: %s", pkg, err)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := orm.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the genesis section conf.<pkg> as the configuration of
// pkg. A missing section is ErrNotFound.
func InitConfig(db Store, opts royalty.Options, pkg string, conf Configuration) error {
	var sections royalty.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrap(err, "read conf")
	}
	if _, ok := sections[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "read %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}
