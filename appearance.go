package main

import (
	"fmt"
	"strings"
)

type Appearance struct {
	Color string
	Icon  string
	Label string
}

// ResolveAppearance is total over the block type enum. Any other value is a
// programming error.
func ResolveAppearance(t BlockType) Appearance {
	switch t {
	case ConditionActionHandler:
		return Appearance{Color: "#6585D6", Icon: "condition", Label: "ConditionActionHandler"}
	case ConsoleResultHandler:
		return Appearance{Color: "var(--color-primary-blue)", Icon: "squares", Label: "ConsoleResultHandler"}
	case DoubleOptInEmailActionHandler:
		return Appearance{Color: "#2CBED0", Icon: "mail-double-opt-in", Label: "DoubleOptInEmailActionHandler"}
	case EmailActionHandler:
		return Appearance{Color: "#FB9600", Icon: "mail", Label: "EmailActionHandler"}
	case EventActionHandler:
		return Appearance{Color: "#7942EE", Icon: "add-tag", Label: "EventActionHandler"}
	case ExternalUrlActionHandler:
		return Appearance{Color: "#6585D6", Icon: "setting", Label: "ExternalUrlActionHandler"}
	case ForwardEmailActionHandler:
		return Appearance{Color: "#FFC500", Icon: "mail-redirect", Label: "ForwardEmailActionHandler"}
	case PointsActionHandler:
		return Appearance{Color: "#8DBE00", Icon: "coins", Label: "PointsActionHandler"}
	case PointsExpireHandler:
		return Appearance{Color: "#C4CC51", Icon: "coins", Label: "PointsExpireHandler"}
	case PushActionHandler:
		return Appearance{Color: "#7E8BAA", Icon: "notification", Label: "PushActionHandler"}
	case ReferralEmailActionHandler:
		return Appearance{Color: "#BA72C7", Icon: "mail-referral", Label: "ReferralEmailActionHandler"}
	case RemoveEventActionHandler:
		return Appearance{Color: "#E25A50", Icon: "delete-tag", Label: "RemoveEventActionHandler"}
	case SMSActionHandler:
		return Appearance{Color: "#21B657", Icon: "message", Label: "SMSActionHandler"}
	case SplitActionHandler:
		return Appearance{Color: "#6585D6", Icon: "split", Label: "SplitActionHandler"}
	case StatusActionHandler:
		return Appearance{Color: "#7084B6", Icon: "star", Label: "StatusActionHandler"}
	case WaitActionHandler:
		return Appearance{Color: "var(--color-primary-blue)", Icon: "clock", Label: "WaitActionHandler"}
	}
	panic(fmt.Sprintf("blockflow: no appearance for block type %d", int(t)))
}

func (t BlockType) String() string {
	if t < 0 || t >= numBlockTypes {
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
	return ResolveAppearance(t).Label
}

func (t BlockType) Valid() bool {
	return t >= 0 && t < numBlockTypes
}

func AllBlockTypes() []BlockType {
	types := make([]BlockType, 0, numBlockTypes)
	for t := BlockType(0); t < numBlockTypes; t++ {
		types = append(types, t)
	}
	return types
}

// ParseBlockType accepts a label case-insensitively, with or without the
// "Handler"/"ActionHandler" suffix.
func ParseBlockType(s string) (BlockType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for _, t := range AllBlockTypes() {
		label := strings.ToLower(ResolveAppearance(t).Label)
		if s == label ||
			s == strings.TrimSuffix(label, "actionhandler") ||
			s == strings.TrimSuffix(label, "handler") {
			return t, true
		}
	}
	return 0, false
}

// cssPalette resolves the CSS custom properties used by the appearance table.
var cssPalette = map[string]string{
	"--color-primary-blue": "#3B6CF6",
}

// hexColor turns an appearance colour into a plain hex value usable outside a
// stylesheet.
func hexColor(c string) string {
	c = strings.TrimSpace(c)
	if strings.HasPrefix(c, "var(") && strings.HasSuffix(c, ")") {
		name := strings.TrimSpace(c[len("var(") : len(c)-1])
		if hex, ok := cssPalette[name]; ok {
			return hex
		}
		return "#808080"
	}
	return c
}
