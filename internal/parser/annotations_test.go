package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testforge/internal/model"
)

func scanOne(t *testing.T, src string) *model.Class {
	t.Helper()
	cls, err := NewScanner().ScanSource(context.Background(), "Fixture.java", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, cls)
	return cls
}

func TestAnnotationAttributes(t *testing.T) {
	src := `package com.example.web;

@RestController
@RequestMapping("/users")
public class Fixture {

    @Column(name = "user_id", nullable = false)
    private String userId;
}
`
	cls := scanOne(t, src)
	require.Len(t, cls.Annotations, 2)

	rest := cls.Annotations[0]
	assert.Equal(t, "RestController", rest.Name)
	assert.Equal(t, "org.springframework.web.bind.annotation.RestController", rest.QualifiedName)
	assert.Empty(t, rest.Attributes)
	assert.NotNil(t, rest.Attributes)

	mapping := cls.Annotations[1]
	assert.Equal(t, "RequestMapping", mapping.Name)
	assert.Equal(t, map[string]string{"value": `"/users"`}, mapping.Attributes,
		"single values keep their source form under the value key")

	require.Len(t, cls.Fields, 1)
	require.Len(t, cls.Fields[0].Annotations, 1)
	column := cls.Fields[0].Annotations[0]
	assert.Equal(t, map[string]string{
		"name":     `"user_id"`,
		"nullable": "false",
	}, column.Attributes)
}

func TestAnnotationResolutionOrder(t *testing.T) {
	src := `package com.example;

import com.acme.audit.Audited;

@Audited
@Service
@javax.annotation.Resource
@Fancy
public class Fixture {
}
`
	cls := scanOne(t, src)
	require.Len(t, cls.Annotations, 4)

	tests := []struct {
		name      string
		qualified string
	}{
		{"Audited", "com.acme.audit.Audited"},
		{"Service", "org.springframework.stereotype.Service"},
		{"Resource", "javax.annotation.Resource"},
		{"Fancy", "Fancy"},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.name, cls.Annotations[i].Name)
		assert.Equal(t, tt.qualified, cls.Annotations[i].QualifiedName)
	}
}

func TestAnnotationResolverOverride(t *testing.T) {
	src := `package com.example;

@Service
public class Fixture {
}
`
	s := NewScanner(WithResolver(NopResolver{}))
	cls, err := s.ScanSource(context.Background(), "Fixture.java", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, cls)

	// The nop resolver misses, so the known-annotation table still
	// qualifies the stereotype.
	require.Len(t, cls.Annotations, 1)
	assert.Equal(t, "org.springframework.stereotype.Service", cls.Annotations[0].QualifiedName)
}

func TestImportShadowsKnownTable(t *testing.T) {
	src := `package com.example;

import com.acme.custom.Service;

@Service
public class Fixture {
}
`
	cls := scanOne(t, src)
	require.Len(t, cls.Annotations, 1)
	assert.Equal(t, "com.acme.custom.Service", cls.Annotations[0].QualifiedName,
		"an explicit import outranks the fallback table")
}

func TestWildcardAndStaticImportsIgnored(t *testing.T) {
	src := `package com.example;

import com.acme.util.*;
import static org.junit.Assert.assertTrue;

public class Fixture {
    private Helper helper;
}
`
	cls := scanOne(t, src)
	require.Len(t, cls.Fields, 1)
	assert.Equal(t, "Helper", cls.Fields[0].ResolvedType,
		"wildcard imports resolve nothing, the simple name stays")
}
