package core

import "strings"

// FieldSeparator delimits the columns of one cache line.
// Descriptions carry no escaping, so everything past the second
// separator belongs to the description.
const FieldSeparator = "\t"

// PackageRecord represents a single entry of the package listing.
// Identifier carries a channel prefix ("nixos.neovim") in channel mode
// and a bare name or flake-qualified name ("nixpkgs#neovim") in
// registry mode. Version and Description may be empty.
type PackageRecord struct {
	Identifier  string
	Version     string
	Description string
}

// ParseLine parses one cache line into a PackageRecord.
// Lines have one to three separator-delimited fields; only the
// identifier is required. Duplicate identifiers across lines are
// passed through unchanged.
func ParseLine(line string) (PackageRecord, error) {
	fields := strings.SplitN(line, FieldSeparator, 3)

	record := PackageRecord{Identifier: fields[0]}
	if len(fields) > 1 {
		record.Version = fields[1]
	}
	if len(fields) > 2 {
		record.Description = fields[2]
	}

	if err := ValidateRecord(&record); err != nil {
		return PackageRecord{}, err
	}
	return record, nil
}

// Line renders the record back into cache line form.
// Empty trailing fields are omitted.
func (r *PackageRecord) Line() string {
	line := r.Identifier + FieldSeparator + r.Version + FieldSeparator + r.Description
	return strings.TrimRight(line, FieldSeparator)
}

// NamePortion returns the bare package name of the identifier: the
// part after the "#" for flake-qualified names, then the part after
// the last "." for channel-prefixed names. A plain name is returned
// unchanged.
func (r *PackageRecord) NamePortion() string {
	name := r.Identifier
	if idx := strings.IndexByte(name, '#'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// Fold lowercases s when ignoreCase is set, otherwise returns it
// unchanged. Both sides of every match comparison go through this.
func Fold(s string, ignoreCase bool) string {
	if ignoreCase {
		return strings.ToLower(s)
	}
	return s
}
