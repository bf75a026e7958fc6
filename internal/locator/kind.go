// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locator

// Kind identifies the storage surface a location lives on. It is resolved once
// at parse time; consumers switch on it exhaustively.
type Kind int

const (
	// KindUnresolved is a location whose surface could not be determined, either
	// because it is a bare name or because the URL host was not recognized.
	KindUnresolved Kind = iota
	// KindBlob is an object container on the blob endpoint.
	KindBlob
	// KindFile is a hierarchical share on the file endpoint.
	KindFile
	// KindS3 is an S3 bucket. It is only valid as a copy source.
	KindS3
)

// KindFromDiscriminator maps the second DNS label of a storage host onto a
// Kind. Anything other than "blob" or "file" is unresolved.
func KindFromDiscriminator(label string) Kind {
	switch label {
	case "blob":
		return KindBlob
	case "file":
		return KindFile
	default:
		return KindUnresolved
	}
}

// Discriminator returns the host label for the kind ("blob", "file"), or ""
// for kinds that are not addressed through the account host.
func (k Kind) Discriminator() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindFile:
		return "file"
	case KindS3, KindUnresolved:
		return ""
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindFile:
		return "file"
	case KindS3:
		return "s3"
	case KindUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// ContainerNoun is the user-facing name of the first-level namespace.
func (k Kind) ContainerNoun() string {
	switch k {
	case KindFile:
		return "share"
	case KindS3:
		return "bucket"
	case KindBlob, KindUnresolved:
		return "container"
	default:
		return "container"
	}
}
