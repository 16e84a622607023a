package custom

import (
	"bytes"
	"sync"

	"github.com/vidpool/vidpool/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// compile parses the script once per path and keeps its prototype for every later call.
func compile(path string) (*lua.FunctionProto, error) {
	if cached, ok := bytecodeCache.Load(path); ok {
		return cached.(*lua.FunctionProto), nil
	}

	contents, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(contents), path)
	if err != nil {
		return nil, err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, err
	}

	actual, _ := bytecodeCache.LoadOrStore(path, proto)
	return actual.(*lua.FunctionProto), nil
}

// Invalidate drops the compiled prototype of path, so an edited script is picked up.
func Invalidate(path string) {
	bytecodeCache.Delete(path)
}
