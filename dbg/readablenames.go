package dbg

import (
	"reflect"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// This converts arbitrary comparable values into random readable names. It
// leaks memory but generates the names lazily, so it's not a problem unless
// you're actually using it. This is helpful for turning pointers into
// something more easily distinguishable when debugging.

var (
	memoLock sync.Mutex
	memo     = map[interface{}]string{}
	title    = cases.Title(language.English)
)

func init() {
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Name returns a stable name for obj within this process. Nil pointers, maps,
// slices and interfaces are all named "Ø".
func Name(obj interface{}) string {
	if isNil(obj) {
		return "Ø"
	}

	key := obj
	if v := reflect.ValueOf(obj); !v.Type().Comparable() {
		// Slices, maps and funcs are named by their backing pointer.
		key = v.Pointer()
	}

	memoLock.Lock()
	defer memoLock.Unlock()
	if r, ok := memo[key]; ok {
		return r
	}
	r := title.String(petname.Adjective()) + title.String(petname.Name())
	memo[key] = r
	return r
}

func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}
