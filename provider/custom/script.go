// Package custom runs user Lua scripts that teach vidpool a new endpoint dialect.
//
// A script defines two globals:
//
//	function request(op, args) return { method = "GET", path = "/x", query = { q = args.query } } end
//	function parse(op, body) return json.decode(body) end
//
// Scripts get the mangal-lua-libs preload, so require("json"), require("strings") and friends work.
// Every call runs in a fresh state built from a cached bytecode prototype.
package custom

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/util"
	"github.com/vidpool/vidpool/where"
	lua "github.com/yuin/gopher-lua"
)

// Script is a compiled custom endpoint script.
type Script struct {
	name  string
	path  string
	proto *lua.FunctionProto
}

// Call is the request a script asked for.
type Call struct {
	Method string
	Path   string
	Query  map[string]string
}

// Resolve makes a relative script path relative to the scripts directory.
func Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(where.Scripts(), path)
}

// Load compiles the script at path and checks that both required functions are defined.
func Load(path string) (*Script, error) {
	path = Resolve(path)

	proto, err := compile(path)
	if err != nil {
		return nil, err
	}

	s := &Script{name: util.FileStem(path), path: path, proto: proto}

	L, err := s.state()
	if err != nil {
		return nil, err
	}
	defer L.Close()

	for _, fn := range []string{constant.RequestFn, constant.ParseFn} {
		if L.GetGlobal(fn).Type() != lua.LTFunction {
			return nil, fmt.Errorf("function %s is required but not defined in %s", fn, s.name)
		}
	}

	return s, nil
}

// Name is the script file name without extension.
func (s *Script) Name() string {
	return s.name
}

func (s *Script) state() (*lua.LState, error) {
	L := lua.NewState()
	libs.Preload(L)

	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, err
	}
	return L, nil
}

// call runs a global function in a fresh state and hands its single result to read.
func (s *Script) call(fn string, args func(L *lua.LState) []lua.LValue, read func(L *lua.LState, v lua.LValue) error) error {
	L, err := s.state()
	if err != nil {
		return err
	}
	defer L.Close()

	luaFn := L.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return fmt.Errorf("function %s is not defined", fn)
	}

	if err := L.CallByParam(lua.P{Fn: luaFn, NRet: 1, Protect: true}, args(L)...); err != nil {
		return err
	}

	ret := L.Get(-1)
	L.Pop(1)
	return read(L, ret)
}

// Request asks the script which call serves op.
func (s *Script) Request(op string, args map[string]string) (Call, error) {
	var call Call
	in := func(L *lua.LState) []lua.LValue {
		table := L.NewTable()
		for k, v := range args {
			table.RawSetString(k, lua.LString(v))
		}
		return []lua.LValue{lua.LString(op), table}
	}

	err := s.call(constant.RequestFn, in, func(L *lua.LState, v lua.LValue) error {
		table, ok := v.(*lua.LTable)
		if !ok {
			return fmt.Errorf("%s returned %s, expected table", constant.RequestFn, v.Type())
		}

		call.Method = strings.ToUpper(getString(table, "method"))
		if call.Method == "" {
			call.Method = http.MethodGet
		}
		call.Path = getString(table, "path")
		call.Query = getStringMap(table, "query")
		return nil
	})

	return call, err
}

// parse runs the script's parse function over a response body.
func (s *Script) parse(op string, body []byte, want lua.LValueType, read func(lua.LValue) error) error {
	in := func(*lua.LState) []lua.LValue {
		return []lua.LValue{lua.LString(op), lua.LString(body)}
	}

	return s.call(constant.ParseFn, in, func(_ *lua.LState, v lua.LValue) error {
		if v.Type() != want {
			return fmt.Errorf("%s returned %s, expected %s", constant.ParseFn, v.Type(), want)
		}
		return read(v)
	})
}
