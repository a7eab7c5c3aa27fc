package policy

import (
	"reflect"
	"testing"
)

func BenchmarkCache_ShouldTolerate_Hit(b *testing.B) {
	c := New()
	typ := reflect.TypeOf(&markedSpec{})
	c.ShouldTolerate(typ)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ShouldTolerate(typ)
	}
}

func BenchmarkCache_ShouldTolerate_Parallel(b *testing.B) {
	c := New()
	typ := reflect.TypeOf(&markedSpec{})
	c.ShouldTolerate(typ)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.ShouldTolerate(typ)
		}
	})
}

func BenchmarkHasMarker(b *testing.B) {
	typ := reflect.TypeOf(&inheritedSpec{})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		HasMarker(typ)
	}
}
