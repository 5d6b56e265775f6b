package hashkit_test

import (
	"fmt"

	"github.com/unkn0wn-root/hashkit"
)

func ExampleGenerateFunctions() {
	for _, f := range hashkit.GenerateFunctions(3) {
		fmt.Println(f)
	}
	// Output:
	// default/0x0000000000000000
	// murmur3/0x9e3779b97f4a7c15
	// fnv1a/0x3c6ef372fe94f82a
}

func ExampleDoubleHasher_HashMultiple() {
	d := hashkit.NewDoubleHasher()
	fmt.Println(len(d.HashMultiple("hello", 5, 1000)))
	fmt.Println(d.HashMultiple("hello", 3, 0))
	// Output:
	// 5
	// [0 0 0]
}
