package langdetect

import (
	"testing"
)

func BenchmarkExtensionCpp(b *testing.B) {
	code := `#include <iostream>

int main() {
    std::cout << "Hello, World!" << std::endl;
}`
	b.ResetTimer()
	for range b.N {
		Extension(code)
	}
}

func BenchmarkExtensionPython(b *testing.B) {
	code := `def hello():
    print("Hello, World!")

if __name__ == "__main__":
    hello()`
	b.ResetTimer()
	for range b.N {
		Extension(code)
	}
}

func BenchmarkExtensionClassifier(b *testing.B) {
	code := `public class Hello {
    public static void main(String[] args) {
        System.out.println("Hello");
    }
}`
	b.ResetTimer()
	for range b.N {
		Extension(code)
	}
}

func BenchmarkExtensionEmpty(b *testing.B) {
	b.ResetTimer()
	for range b.N {
		Extension("")
	}
}
