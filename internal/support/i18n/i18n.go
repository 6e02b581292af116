package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// 字段说明只提供英文与中文两种语言。
var descriptionMatcher = language.NewMatcher([]language.Tag{language.English, language.Chinese})

// DescriptionLanguage 将任意 BCP 47 语言标签映射为字段说明使用的语言代码（"en" 或 "zh"）。
// 无法解析的标签回退为英文。
func DescriptionLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "en"
	}
	_, index, confidence := descriptionMatcher.Match(tag)
	if confidence == language.No || index != 1 {
		return "en"
	}
	return "zh"
}

// Manager 管理 CLI 与校验报告的翻译内容。
type Manager struct {
	defaultLang  string
	translations map[string]map[string]string
	matcher      language.Matcher
	tags         []string
	logger       *slog.Logger
	mu           sync.RWMutex
}

// Option 用于配置 Manager。
type Option func(*Manager)

// WithLogger 设置 Manager 使用的日志实例。
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDefaultLang 设置默认语言。
func WithDefaultLang(lang string) Option {
	return func(m *Manager) {
		m.defaultLang = lang
	}
}

// NewManager 创建 i18n Manager 并加载内置语言包。
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		defaultLang:  "en-US",
		translations: make(map[string]map[string]string),
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.loadEmbeddedTranslations(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) loadEmbeddedTranslations() error {
	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := embeddedLocales.ReadFile("locales/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		if err := m.merge(strings.TrimSuffix(entry.Name(), ".json"), data); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// LoadFromDir 从外部目录加载翻译文件，同名键覆盖内置内容。
func (m *Manager) LoadFromDir(dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // 外部目录不存在也可以继续。
		}
		return fmt.Errorf("failed to read external locales directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			m.logger.Warn("failed to read external locale file", "file", file.Name(), "error", err)
			continue
		}

		if err := m.merge(strings.TrimSuffix(file.Name(), ".json"), data); err != nil {
			m.logger.Warn("failed to unmarshal external locale file", "file", file.Name(), "error", err)
		}
	}
	return nil
}

func (m *Manager) merge(lang string, data []byte) error {
	var content map[string]string
	if err := json.Unmarshal(data, &content); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.translations[lang]; !exists {
		m.translations[lang] = make(map[string]string, len(content))
	}
	for k, v := range content {
		m.translations[lang][k] = v
	}
	m.rebuildMatcher()
	return nil
}

// rebuildMatcher 在持有写锁时调用。默认语言排在首位，作为无匹配时的结果。
func (m *Manager) rebuildMatcher() {
	langs := make([]string, 0, len(m.translations))
	for lang := range m.translations {
		if lang != m.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	if _, ok := m.translations[m.defaultLang]; ok {
		langs = append([]string{m.defaultLang}, langs...)
	}

	tags := make([]language.Tag, 0, len(langs))
	names := make([]string, 0, len(langs))
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, lang)
	}
	m.tags = names
	m.matcher = language.NewMatcher(tags)
}

// Match 返回与 lang 最接近的已加载语言，例如 "zh" 对应 "zh-CN"。
func (m *Manager) Match(lang string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.match(lang)
}

func (m *Manager) match(lang string) string {
	if _, ok := m.translations[lang]; ok {
		return lang
	}
	if m.matcher == nil {
		return m.defaultLang
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return m.defaultLang
	}
	_, index, confidence := m.matcher.Match(tag)
	if confidence == language.No || index >= len(m.tags) {
		return m.defaultLang
	}
	return m.tags[index]
}

// Translate 按语言与键名返回翻译内容，依次回退到默认语言与键名本身。
func (m *Manager) Translate(lang, key string, args ...any) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, candidate := range []string{m.match(lang), m.defaultLang} {
		if trans, ok := m.translations[candidate]; ok {
			if val, ok := trans[key]; ok {
				if len(args) > 0 {
					return fmt.Sprintf(val, args...)
				}
				return val
			}
		}
	}

	return key
}

// Translator 返回绑定了语言的翻译函数。
func (m *Manager) Translator(lang string) func(key string, args ...any) string {
	resolved := m.Match(lang)
	return func(key string, args ...any) string {
		return m.Translate(resolved, key, args...)
	}
}

// GetSupportedLanguages 返回排序后的已加载语言列表。
func (m *Manager) GetSupportedLanguages() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	langs := make([]string, 0, len(m.translations))
	for k := range m.translations {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// GetTranslations 返回指定语言的完整翻译表。
func (m *Manager) GetTranslations(lang string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if trans, ok := m.translations[lang]; ok {
		// 返回副本，避免外部修改
		out := make(map[string]string, len(trans))
		for k, v := range trans {
			out[k] = v
		}
		return out
	}
	return nil
}
