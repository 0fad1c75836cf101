package rastershm

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/torizon/rastershm/cf"
)

const profileVersion = 1

type Profile struct {
	Mapper              string `cf:"mapper"`
	HandleTableCapacity int    `cf:"handle_table_capacity"`
	i                   Instrument
}

func NewBaselineProfile() *Profile {
	return &Profile{
		Mapper:              "shared",
		HandleTableCapacity: 0,
	}
}

func (self *Profile) Load(data map[string]interface{}) error {
	if v, found := data["profile_version"]; found {
		if i, ok := v.(int); ok {
			if i != profileVersion {
				return errors.Errorf("invalid profile version [%d != %d]", i, profileVersion)
			}
		} else {
			return errors.New("invalid 'profile_version' value")
		}
	} else {
		return errors.New("missing 'profile_version'")
	}
	if v, found := data["instrument"]; found {
		if submap, ok := v.(map[string]interface{}); ok {
			var config map[string]interface{}
			if v, found := submap["config"]; found {
				if c, ok := v.(map[string]interface{}); ok {
					config = c
				} else {
					return errors.New("invalid 'instrument/config' value")
				}
			}
			if v, found := submap["name"]; found {
				if name, ok := v.(string); ok {
					i, err := NewInstrument(name, config)
					if err != nil {
						return errors.Wrap(err, "error creating instrument")
					}
					self.i = i
				} else {
					return errors.New("invalid 'instrument/name' value")
				}
			} else {
				return errors.New("missing 'instrument/name'")
			}
		} else {
			return errors.Errorf("invalid 'instrument' value [%v]", reflect.TypeOf(v))
		}
	}
	return cf.Load(data, self)
}

func (self *Profile) SetInstrument(i Instrument) {
	self.i = i
}

func (self *Profile) Dump() string {
	out := cf.Dump("rastershm.Profile", self)
	out += fmt.Sprintf("instrument %v\n", reflect.TypeOf(self.i))
	return out
}
