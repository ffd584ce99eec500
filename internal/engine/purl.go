package engine

import (
	"sort"
	"strings"

	packageurl "github.com/package-url/packageurl-go"

	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/record"
)

// PURL returns the Package URL of an installed distribution. The record, if
// any, contributes qualifiers: vcs_url for VCS installs, download_url and
// checksum for archives. Directory installs carry no qualifier.
func PURL(name, version string, rec record.Record) string {
	qualifiers := map[string]string{}

	switch r := rec.(type) {
	case *record.VCSRecord:
		qualifiers["vcs_url"] = r.VCSInfo.VCS + "+" + r.URL + "@" + r.VCSInfo.CommitID
	case *record.ArchiveRecord:
		qualifiers["download_url"] = r.URL
		if sums := checksums(r.ArchiveInfo.AllHashes()); sums != "" {
			qualifiers["checksum"] = sums
		}
	}

	var q packageurl.Qualifiers
	if len(qualifiers) > 0 {
		q = packageurl.QualifiersFromMap(qualifiers)
	}
	return packageurl.NewPackageURL(packageurl.TypePyPi, "", dist.NormalizeName(name), version, q, "").ToString()
}

// checksums renders hashes as "alg:hex" pairs joined by commas, sorted.
func checksums(hashes map[string]string) string {
	parts := make([]string, 0, len(hashes))
	for alg, value := range hashes {
		parts = append(parts, alg+":"+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
