package geoip

import (
	"context"
	"errors"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// ErrNoCountry indicates the address resolved to no country (private or
// unroutable addresses, or an address missing from the database).
var ErrNoCountry = errors.New("no_country")

// Lookup resolves an IP address to an ISO 3166-1 alpha-2 country code.
type Lookup interface {
	Country(ctx context.Context, addr string) (string, error)
}

// MaxMind resolves countries from a local MaxMind GeoLite2/GeoIP2 database.
type MaxMind struct {
	reader *geoip2.Reader
}

func OpenMaxMind(path string) (*MaxMind, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMind{reader: reader}, nil
}

func (m *MaxMind) Country(ctx context.Context, addr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ip := net.ParseIP(addr)
	if ip == nil {
		return "", ErrNoCountry
	}

	record, err := m.reader.Country(ip)
	if err != nil {
		return "", err
	}
	if record == nil || record.Country.IsoCode == "" {
		return "", ErrNoCountry
	}

	return record.Country.IsoCode, nil
}

func (m *MaxMind) Close() error {
	return m.reader.Close()
}

// Noop is used when no GeoIP database is configured. Every address resolves
// to no country, which downstream treats as the default region.
type Noop struct{}

func (Noop) Country(ctx context.Context, addr string) (string, error) {
	return "", ErrNoCountry
}
