package entities

import (
	"strconv"
	"strings"
)

// TokenKind tags a parsed callback token. Buttons carry opaque strings of the
// form "namespace:payload"; parsing happens once at the boundary and handlers
// dispatch on the kind, so an unmatched prefix can only ever be a no-op.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenMenu        // payload: home|back|create|settings|help
	TokenTemplate    // payload: template name
	TokenRep         // payload: saved name, or RepCustom
	TokenSettingsAdd // no payload
	TokenSettingsDel // Index: position in the saved-name list
	TokenConfirm     // Yes: confirm or decline
	TokenEdit        // payload: field label, or EditCancel
)

// RepCustom is the TokenRep payload for the free-text entry option.
const RepCustom = "CUSTOM"

// EditCancel is the TokenEdit payload that returns to the review screen.
const EditCancel = "cancel"

// Token is a callback button press decoded into a tagged variant.
type Token struct {
	Kind    TokenKind
	Payload string
	Index   int  // TokenSettingsDel only
	Yes     bool // TokenConfirm only
}

// ParseToken decodes raw callback data. Malformed or stale data yields
// TokenUnknown, which handlers treat as a no-op.
func ParseToken(data string) Token {
	ns, payload, ok := strings.Cut(data, ":")
	if !ok {
		return Token{Kind: TokenUnknown, Payload: data}
	}
	switch ns {
	case "menu":
		switch payload {
		case "home", "back", "create", "settings", "help":
			return Token{Kind: TokenMenu, Payload: payload}
		}
	case "tpl":
		return Token{Kind: TokenTemplate, Payload: payload}
	case "rep":
		return Token{Kind: TokenRep, Payload: payload}
	case "conf":
		switch payload {
		case "yes":
			return Token{Kind: TokenConfirm, Yes: true}
		case "no":
			return Token{Kind: TokenConfirm}
		}
	case "edit":
		return Token{Kind: TokenEdit, Payload: payload}
	case "settings":
		if payload == "add" {
			return Token{Kind: TokenSettingsAdd}
		}
		if rest, found := strings.CutPrefix(payload, "del:"); found {
			idx, err := strconv.Atoi(rest)
			if err == nil {
				return Token{Kind: TokenSettingsDel, Index: idx}
			}
		}
	}
	return Token{Kind: TokenUnknown, Payload: data}
}

// Callback-data builders, the inverse of ParseToken.

func MenuToken(item string) string { return "menu:" + item }

func TemplateToken(name string) string { return "tpl:" + name }

func RepToken(name string) string { return "rep:" + name }

func ConfirmToken(yes bool) string {
	if yes {
		return "conf:yes"
	}
	return "conf:no"
}

func EditToken(label string) string { return "edit:" + label }

func SettingsAddToken() string { return "settings:add" }

func SettingsDelToken(i int) string { return "settings:del:" + strconv.Itoa(i) }
