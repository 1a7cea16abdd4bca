package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// SeedingType enumerates the peer discovery strategies.
type SeedingType int

const (
	// WebStatic discovers seed peers from a well-known web-hosted list.
	WebStatic SeedingType = iota

	// List connects to an explicit, ordered list of seed peers.
	List
)

// Seeding is the strategy used to discover peers at startup. It is only
// resolved and forwarded here; the p2p layer consumes it.
type Seeding struct {
	Type  SeedingType
	Peers []string
}

// SeedWebStatic ...
func SeedWebStatic() Seeding {
	return Seeding{Type: WebStatic}
}

// SeedList builds an explicit-list seeding strategy.
func SeedList(peers []string) Seeding {
	return Seeding{Type: List, Peers: peers}
}

func (s Seeding) String() string {
	switch s.Type {
	case List:
		return fmt.Sprintf("List(%s)", strings.Join(s.Peers, ","))
	default:
		return "WebStatic"
	}
}

// MarshalJSON encodes WebStatic as the plain string "WebStatic" and List as
// {"List": [...]}.
func (s Seeding) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case List:
		return json.Marshal(map[string][]string{"List": s.Peers})
	default:
		return json.Marshal("WebStatic")
	}
}

// UnmarshalJSON decodes either encoding.
func (s *Seeding) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		return s.fromString(str)
	}

	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("invalid seeding type: %s", string(data))
	}

	for k, peers := range m {
		if strings.EqualFold(k, "list") {
			*s = SeedList(peers)
			return nil
		}
	}

	return fmt.Errorf("invalid seeding type: %s", string(data))
}

func (s *Seeding) fromString(str string) error {
	if strings.EqualFold(str, "webstatic") {
		*s = SeedWebStatic()
		return nil
	}
	return fmt.Errorf("unknown seeding type %q", str)
}

// SeedingHookFunc returns a mapstructure decode hook that converts raw
// config file values into a Seeding. Viper lowercases map keys, so the List
// key is matched case-insensitively.
func SeedingHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(Seeding{}) {
			return data, nil
		}

		switch val := data.(type) {
		case string:
			s := Seeding{}
			if err := s.fromString(val); err != nil {
				return nil, err
			}
			return s, nil

		case map[string]interface{}:
			for k, raw := range val {
				if !strings.EqualFold(k, "list") {
					continue
				}

				items, ok := raw.([]interface{})
				if !ok {
					return nil, fmt.Errorf("seed list must be an array of strings")
				}

				peers := make([]string, 0, len(items))
				for _, item := range items {
					peer, ok := item.(string)
					if !ok {
						return nil, fmt.Errorf("seed list entries must be strings")
					}
					peers = append(peers, peer)
				}

				return SeedList(peers), nil
			}
			return nil, fmt.Errorf("unknown seeding type %v", val)
		}

		return data, nil
	}
}
