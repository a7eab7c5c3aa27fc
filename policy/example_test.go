package policy_test

import (
	"fmt"
	"reflect"

	"github.com/jonwraymond/specops/policy"
)

type rejectsEmptyName struct {
	policy.HandleErrors
}

type createsAccount struct{}

func ExampleCache_ShouldTolerate() {
	cache := policy.New()

	fmt.Println(cache.ShouldTolerate(reflect.TypeOf(&rejectsEmptyName{})))
	fmt.Println(cache.ShouldTolerate(reflect.TypeOf(&createsAccount{})))
	fmt.Println(cache.Len())
	// Output:
	// true
	// false
	// 2
}
