package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// MinPasswordLength is the shortest password Protect accepts.
const MinPasswordLength = 4

// Mode selects how Protect treats a document.
type Mode string

// Protection modes. The zero Mode is invalid.
const (
	// ModeEncrypt applies AES-256 encryption with user and owner passwords.
	ModeEncrypt Mode = "encrypt"
	// ModePassthrough re-saves the document unencrypted and says so.
	ModePassthrough Mode = "passthrough"
)

// ParseMode parses a protection mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeEncrypt, ModePassthrough:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (must be encrypt or passthrough)", ErrInvalidProtection, s)
}

// Permissions is the set of operations granted to holders of the user
// password.
type Permissions string

// Permission sets.
const (
	PermissionsNone Permissions = "none"
	PermissionsAll  Permissions = "all"
)

// ParsePermissions parses a permission set name. Empty input selects none.
func ParsePermissions(s string) (Permissions, error) {
	p := Permissions(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PermissionsNone, nil
	case PermissionsNone, PermissionsAll:
		return p, nil
	}
	return "", fmt.Errorf("%w: permissions %q (must be none or all)", ErrInvalidOption, s)
}

func (p Permissions) flags() model.PermissionFlags {
	if p == PermissionsAll {
		return model.PermissionsAll
	}
	return model.PermissionsNone
}

// Strength grades a password.
type Strength string

// Password grades.
const (
	StrengthWeak   Strength = "weak"
	StrengthGood   Strength = "good"
	StrengthStrong Strength = "strong"
)

// PasswordStrength grades pw: under 6 characters is weak, 10 or more with an
// upper case letter, a digit, and a symbol is strong, anything else is good.
func PasswordStrength(pw string) Strength {
	n := len([]rune(pw))
	if n < 6 {
		return StrengthWeak
	}
	if n < 10 {
		return StrengthGood
	}

	var upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r < 'a' || r > 'z':
			symbol = true
		}
	}
	if upper && digit && symbol {
		return StrengthStrong
	}
	return StrengthGood
}

// ProtectOptions configures Protect.
type ProtectOptions struct {
	Mode          Mode
	UserPassword  string
	OwnerPassword string
	Permissions   Permissions
}

// ProtectionInfo describes what Protect did to a document.
type ProtectionInfo struct {
	Mode         Mode        `json:"mode"`
	Encrypted    bool        `json:"encrypted"`
	Algorithm    string      `json:"algorithm,omitempty"`
	Permissions  Permissions `json:"permissions,omitempty"`
	Strength     Strength    `json:"strength"`
	Notice       string      `json:"notice"`
	OriginalSize int64       `json:"original_size"`
	OutputSize   int64       `json:"output_size"`
}

// ProtectResult pairs the protected bytes with their description.
type ProtectResult struct {
	Output []byte
	Info   ProtectionInfo
}

// Notices returned in ProtectionInfo.
const (
	NoticeEncrypted   = "document encrypted with AES-256; the user password is required to open it"
	NoticePassthrough = "document was re-saved without encryption and is NOT password protected"
)

// Protect either encrypts data or re-saves it unchanged, according to
// opts.Mode. Passthrough results always report Encrypted=false.
func Protect(data []byte, opts ProtectOptions) (*ProtectResult, error) {
	switch opts.Mode {
	case ModeEncrypt, ModePassthrough:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidProtection, string(opts.Mode))
	}

	if len([]rune(opts.UserPassword)) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	perms := opts.Permissions
	if perms == "" {
		perms = PermissionsNone
	}
	if _, err := ParsePermissions(string(perms)); err != nil {
		return nil, err
	}

	doc, err := Load(data)
	if err != nil {
		return nil, err
	}

	info := ProtectionInfo{
		Mode:         opts.Mode,
		Strength:     PasswordStrength(opts.UserPassword),
		OriginalSize: int64(len(data)),
	}

	var out []byte
	switch opts.Mode {
	case ModeEncrypt:
		out, err = encrypt(doc, opts.UserPassword, opts.OwnerPassword, perms)
		info.Encrypted = true
		info.Algorithm = "AES-256"
		info.Permissions = perms
		info.Notice = NoticeEncrypted
	case ModePassthrough:
		out, err = doc.Save(SaveOptions{})
		info.Notice = NoticePassthrough
	}
	if err != nil {
		return nil, err
	}

	info.OutputSize = int64(len(out))
	return &ProtectResult{Output: out, Info: info}, nil
}

func encrypt(doc *Document, user, owner string, perms Permissions) ([]byte, error) {
	if owner == "" {
		owner = user
	}

	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewAESConfiguration(user, owner, 256)
	conf.ValidationMode = model.ValidationRelaxed
	conf.Permissions = perms.flags()

	var buf bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(doc.data), &buf, conf); err != nil {
		return nil, fmt.Errorf("%w: encrypt: %v", ErrWrite, err)
	}
	return buf.Bytes(), nil
}
