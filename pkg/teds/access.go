package teds

import (
	"fmt"
	"strings"
)

// AccessCode is the standard TEDS class carried in the identifier.
type AccessCode uint8

const (
	MetaTEDS       AccessCode = 1
	MetaIdTEDS     AccessCode = 2
	ChanTEDS       AccessCode = 3
	ChanIdTEDS     AccessCode = 4
	CalTEDS        AccessCode = 5
	CalIdTEDS      AccessCode = 6
	EUASTEDS       AccessCode = 7
	FreqRespTEDS   AccessCode = 8
	TransferTEDS   AccessCode = 9
	CommandTEDS    AccessCode = 10
	TitleTEDS      AccessCode = 11
	XdcrName       AccessCode = 12
	PHYTEDS        AccessCode = 13
	GeoLocTEDS     AccessCode = 14
	UnitsExtension AccessCode = 15
)

var accessCodeNames = map[AccessCode]string{
	MetaTEDS:       "MetaTEDS",
	MetaIdTEDS:     "MetaIdTEDS",
	ChanTEDS:       "ChanTEDS",
	ChanIdTEDS:     "ChanIdTEDS",
	CalTEDS:        "CalTEDS",
	CalIdTEDS:      "CalIdTEDS",
	EUASTEDS:       "EUASTEDS",
	FreqRespTEDS:   "FreqRespTEDS",
	TransferTEDS:   "TransferTEDS",
	CommandTEDS:    "CommandTEDS",
	TitleTEDS:      "TitleTEDS",
	XdcrName:       "XdcrName",
	PHYTEDS:        "PHYTEDS",
	GeoLocTEDS:     "GeoLocTEDS",
	UnitsExtension: "UnitsExtension",
}

// Valid reports whether c is one of the fifteen standard access codes.
func (c AccessCode) Valid() bool {
	_, ok := accessCodeNames[c]
	return ok
}

// String returns the access code name.
func (c AccessCode) String() string {
	if name, ok := accessCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("AccessCode(%d)", uint8(c))
}

// ParseAccessCode resolves a name such as "MetaTEDS" (case-insensitive).
func ParseAccessCode(name string) (AccessCode, error) {
	for code, n := range accessCodeNames {
		if strings.EqualFold(n, name) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown TEDS access code %q", name)
}
