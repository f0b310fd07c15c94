package types

import (
	"fmt"
	"strings"
)

// LightRole 光源在布光中的角色，决定各指令对它的调制方式
type LightRole int

const (
	// LightRoleNone 未指定（配置中不允许）
	LightRoleNone LightRole = iota
	// LightRoleKey 主光
	LightRoleKey
	// LightRoleFill 补光
	LightRoleFill
	// LightRoleRim 轮廓光
	LightRoleRim
	// LightRoleAmbient 环境光，不参与方向性着色
	LightRoleAmbient
)

var lightRoleNames = map[LightRole]string{
	LightRoleKey:     "key",
	LightRoleFill:    "fill",
	LightRoleRim:     "rim",
	LightRoleAmbient: "ambient",
}

// String 返回角色名
func (r LightRole) String() string {
	if name, ok := lightRoleNames[r]; ok {
		return name
	}
	return "none"
}

// Valid 是否为已定义的角色
func (r LightRole) Valid() bool {
	_, ok := lightRoleNames[r]
	return ok
}

// ParseLightRole 解析角色名（大小写不敏感）
func ParseLightRole(s string) (LightRole, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, n := range lightRoleNames {
		if n == name {
			return r, true
		}
	}
	return LightRoleNone, false
}

// UnmarshalText 支持在 YAML 配置中书写角色名
func (r *LightRole) UnmarshalText(text []byte) error {
	role, ok := ParseLightRole(string(text))
	if !ok {
		return fmt.Errorf("unknown light role %q", string(text))
	}
	*r = role
	return nil
}

// MarshalText 以角色名序列化
func (r LightRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
