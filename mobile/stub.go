//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建只编译这个文件，ebitenmobile 绑定代码在 mobile.go 中，
// 需要 -tags mobile 并且先复制 data/ 到本目录。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
