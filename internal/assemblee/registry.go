package assemblee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"hemicycle/internal/archive"
	"hemicycle/internal/models"
)

// registryFile is the wire shape of the actor/organ registry document.
type registryFile struct {
	Acteurs struct {
		Acteur nodeList[actorNode] `json:"acteur"`
	} `json:"acteurs"`
	Organes struct {
		Organe nodeList[organNode] `json:"organe"`
	} `json:"organes"`
}

type actorNode struct {
	UID       uid `json:"uid"`
	EtatCivil struct {
		Ident struct {
			Prenom string `json:"prenom"`
			Nom    string `json:"nom"`
		} `json:"ident"`
	} `json:"etatCivil"`
}

type organNode struct {
	UID           uid    `json:"uid"`
	Libelle       string `json:"libelle"`
	LibelleAbrege string `json:"libelleAbrege"`
	LibelleAbrev  string `json:"libelleAbrev"`
}

// uid tolerates both encodings of an identifier: a plain string, or an
// object carrying the value under a text-content key.
type uid struct {
	Value string
}

func (u *uid) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &u.Value)
	}

	var obj struct {
		Text string `json:"#text"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	u.Value = obj.Text

	return nil
}

// nodeList tolerates the registry format's optional-attribute encoding
// where a list with exactly one member degrades to a bare object.
type nodeList[T any] []T

func (l *nodeList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil

		return nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}

		*l = items

		return nil
	}

	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	*l = nodeList[T]{single}

	return nil
}

// LoadRegistry parses the actor/organ archive into two lookup tables.
// The registry is an enrichment, not a hard dependency: a container
// with zero JSON members yields two empty tables and no error.
func LoadRegistry(path string) (map[string]models.Actor, map[string]models.Organ, error) {
	actors := map[string]models.Actor{}
	organs := map[string]models.Organ{}

	reader, err := archive.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	err = reader.ForEach(".json", func(member string, rd io.Reader) error {
		var file registryFile
		if err := json.NewDecoder(rd).Decode(&file); err != nil {
			return fmt.Errorf("failed to decode registry member %s: %w", member, err)
		}

		for _, a := range file.Acteurs.Acteur {
			id := strings.TrimSpace(a.UID.Value)
			if id == "" {
				continue
			}

			name := strings.TrimSpace(a.EtatCivil.Ident.Prenom + " " + a.EtatCivil.Ident.Nom)
			if name == "" {
				name = models.UnknownActorName
			}

			actors[id] = models.Actor{Name: name}
		}

		for _, o := range file.Organes.Organe {
			id := strings.TrimSpace(o.UID.Value)
			if id == "" {
				continue
			}

			name := strings.TrimSpace(o.Libelle)
			if name == "" {
				name = models.UnknownGroupName
			}

			acronym := strings.TrimSpace(o.LibelleAbrege)
			if acronym == "" {
				acronym = strings.TrimSpace(o.LibelleAbrev)
			}

			organs[id] = models.Organ{Name: name, Acronym: acronym}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return actors, organs, nil
}
