package web

type requestIDKey struct{}

type userIDKey struct{}

type roleKey struct{}
