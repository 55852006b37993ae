// Package directoryfile loads a credential directory from a YAML file.
//
//	users:
//	  - id: "1"
//	    username: employee1
//	    name: Jane Doe
//	    email: jane@example.com
//	    role: employee
//	    password: Secret1@3       # hashed on load
//	    passcode: "839201"
//
// An entry may carry passwordHash (bcrypt) instead of password.
package directoryfile

import (
	"strings"

	"github.com/jrsteele09/training-portal/users"
	fakeuserrepo "github.com/jrsteele09/training-portal/users/repofake"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Entry is one user record as written in the file.
type Entry struct {
	ID           string `yaml:"id"`
	Username     string `yaml:"username"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Role         string `yaml:"role"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
	Passcode     string `yaml:"passcode"`
}

type fileContents struct {
	Users []Entry `yaml:"users"`
}

// Load reads path and builds an in-memory directory from its entries.
func Load(path string) (*fakeuserrepo.FakeUserRepo, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "[directoryfile.Load] read %s", path)
	}

	var contents fileContents
	if err := k.UnmarshalWithConf("", &contents, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, errors.Wrapf(err, "[directoryfile.Load] unmarshal %s", path)
	}
	if len(contents.Users) == 0 {
		return nil, errors.Errorf("[directoryfile.Load] %s: no users defined", path)
	}

	return Build(contents.Users)
}

// Build validates the entries and returns a directory holding them.
func Build(entries []Entry) (*fakeuserrepo.FakeUserRepo, error) {
	dir := fakeuserrepo.NewFakeUserRepo()
	for i, e := range entries {
		credential, err := e.credential()
		if err != nil {
			return nil, errors.Wrapf(err, "[directoryfile.Build] entry %d", i)
		}
		if err := dir.Add(credential); err != nil {
			return nil, errors.Wrapf(err, "[directoryfile.Build] entry %d", i)
		}
	}
	return dir, nil
}

func (e Entry) credential() (*users.Credential, error) {
	role, err := users.ParseRole(strings.TrimSpace(e.Role))
	if err != nil {
		return nil, err
	}
	identity, err := users.NewIdentity(e.ID, e.Username, e.Name, e.Email, role)
	if err != nil {
		return nil, err
	}

	hash := e.PasswordHash
	switch {
	case hash != "" && e.Password != "":
		return nil, errors.Errorf("%s: set password or passwordHash, not both", e.ID)
	case hash == "" && e.Password == "":
		return nil, errors.Errorf("%s: password is required", e.ID)
	case hash == "":
		if hash, err = users.HashPassword(e.Password); err != nil {
			return nil, errors.Wrapf(err, "%s: hash password", e.ID)
		}
	}

	return &users.Credential{Identity: identity, PasswordHash: hash, Passcode: e.Passcode}, nil
}
