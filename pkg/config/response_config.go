package config

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/gonewx/goodboy/pkg/types"
	"gopkg.in/yaml.v3"
)

// RequiredKeywords 每张响应表都必须覆盖的关键词
var RequiredKeywords = []string{
	"sit", "stay", "jump", "run", "spin", "speak", "fetch", "roll over", "good dog",
}

// ResponseRule 一条自由文本匹配规则
type ResponseRule struct {
	Match    string        `yaml:"match"`    // 小写子串
	Command  types.Command `yaml:"command"`  // 命中后下发的指令
	Messages []string      `yaml:"messages"` // 候选台词，每次随机挑一条
}

// ResponseTable 一张响应表：按顺序匹配，都不命中时使用 Fallback
type ResponseTable struct {
	Rules    []ResponseRule `yaml:"rules"`
	Fallback ResponseRule   `yaml:"fallback"`
}

// ObedienceMessages 进入和结束乖乖模式时的台词
type ObedienceMessages struct {
	Enter string `yaml:"enter"`
	Exit  string `yaml:"exit"`
}

// ResponseConfig 指令输入响应配置
//
// 配置文件位置: data/responses.yaml
type ResponseConfig struct {
	// SpecialPhrases 开启乖乖模式的完整短语（整句匹配，忽略大小写和首尾空白）
	SpecialPhrases    []string          `yaml:"specialPhrases"`
	ObedienceMessages ObedienceMessages `yaml:"obedienceMessages"`
	Default           ResponseTable     `yaml:"default"`
	Obedient          ResponseTable     `yaml:"obedient"`
}

// ParseResponseConfig 从 YAML 数据解析响应配置
func ParseResponseConfig(data []byte) (*ResponseConfig, error) {
	var cfg ResponseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse response config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid response config: %w", err)
	}

	return &cfg, nil
}

// LoadResponseConfigFS 从文件系统加载响应配置
func LoadResponseConfigFS(fsys fs.FS, path string) (*ResponseConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response config: %w", err)
	}
	return ParseResponseConfig(data)
}

// normalize 将匹配串统一为小写
func (c *ResponseConfig) normalize() {
	for i, p := range c.SpecialPhrases {
		c.SpecialPhrases[i] = strings.ToLower(strings.TrimSpace(p))
	}
	for _, table := range []*ResponseTable{&c.Default, &c.Obedient} {
		for i := range table.Rules {
			table.Rules[i].Match = strings.ToLower(table.Rules[i].Match)
		}
	}
}

// Validate 验证配置有效性
//
// 检查：
//   - 至少一个特殊短语，乖乖模式台词非空
//   - 两张表都覆盖 RequiredKeywords
//   - 规则匹配串非空，每条规则（含兜底）至少一条非空台词
//   - 兜底规则不能是 idle（否则输入会被静默吞掉）
func (c *ResponseConfig) Validate() error {
	if len(c.SpecialPhrases) == 0 {
		return fmt.Errorf("specialPhrases must not be empty")
	}
	if c.ObedienceMessages.Enter == "" || c.ObedienceMessages.Exit == "" {
		return fmt.Errorf("obedienceMessages.enter and obedienceMessages.exit must not be empty")
	}

	tables := []struct {
		name  string
		table ResponseTable
	}{
		{"default", c.Default},
		{"obedient", c.Obedient},
	}

	for _, tt := range tables {
		covered := make(map[string]bool, len(tt.table.Rules))
		for i, r := range tt.table.Rules {
			if r.Match == "" {
				return fmt.Errorf("%s.rules[%d]: empty match", tt.name, i)
			}
			if err := validateMessages(r.Messages); err != nil {
				return fmt.Errorf("%s.rules[%d] (%s): %w", tt.name, i, r.Match, err)
			}
			covered[r.Match] = true
		}
		for _, kw := range RequiredKeywords {
			if !covered[kw] {
				return fmt.Errorf("%s table missing keyword %q", tt.name, kw)
			}
		}
		if tt.table.Fallback.Command == types.CommandIdle {
			return fmt.Errorf("%s.fallback must not be idle", tt.name)
		}
		if err := validateMessages(tt.table.Fallback.Messages); err != nil {
			return fmt.Errorf("%s.fallback: %w", tt.name, err)
		}
	}

	return nil
}

func validateMessages(messages []string) error {
	if len(messages) == 0 {
		return fmt.Errorf("messages must not be empty")
	}
	for i, m := range messages {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("messages[%d] is blank", i)
		}
	}
	return nil
}
