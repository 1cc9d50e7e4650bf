package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pokedexgo/pokedex/internal/data"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const battleScoreFunc = "calc_battle_score"

// Engine wraps a single gopher-lua VM holding the battle formulas.
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under scriptsDir/core
// and scriptsDir/combat. Missing directories are skipped; the built-in
// formula then answers every call.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, sub := range []string{"core", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source in the engine's VM.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// HasBattleFormula reports whether a script defined calc_battle_score.
func (e *Engine) HasBattleFormula() bool {
	return e.vm.GetGlobal(battleScoreFunc) != lua.LNil
}

// BattleScore calls calc_battle_score with a table describing s. Any script
// failure is logged and answered by the built-in formula.
func (e *Engine) BattleScore(s *data.Species) float64 {
	fn := e.vm.GetGlobal(battleScoreFunc)
	if fn == lua.LNil {
		return BuiltinBattleScore(s)
	}

	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(s.ID))
	t.RawSetString("name", lua.LString(s.Name))
	t.RawSetString("type", lua.LString(s.Type.String()))
	t.RawSetString("hp", lua.LNumber(s.HP))
	t.RawSetString("attack", lua.LNumber(s.Attack))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_battle_score error", zap.Int("species", s.ID), zap.Error(err))
		return BuiltinBattleScore(s)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_battle_score returned non-number",
			zap.Int("species", s.ID),
			zap.String("type", result.Type().String()),
		)
		return BuiltinBattleScore(s)
	}
	return float64(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// Builtin scores battles without a VM.
type Builtin struct{}

func (Builtin) BattleScore(s *data.Species) float64 { return BuiltinBattleScore(s) }

// BuiltinBattleScore is attack*1.5 + hp*1.2. The explicit conversions keep
// each product rounded on its own, so the result never depends on fused
// multiply-add and matches the Lua evaluation exactly.
func BuiltinBattleScore(s *data.Species) float64 {
	return float64(float64(s.Attack)*1.5) + float64(float64(s.HP)*1.2)
}
