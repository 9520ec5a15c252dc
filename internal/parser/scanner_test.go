package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testforge/internal/model"
)

const userServiceSource = `package com.example.service;

import com.example.repo.UserRepository;
import com.example.model.User;
import java.util.List;
import java.util.Optional;

@Service
public class UserService {

    @Autowired
    private UserRepository userRepository;

    private final AuditLog auditLog;

    private int callCount;

    public UserService(AuditLog auditLog) {
        this.auditLog = auditLog;
    }

    public Optional<User> findById(Long id) {
        return userRepository.findById(id);
    }

    public User create(User user) throws DuplicateUserException {
        if (user == null) {
            throw new IllegalArgumentException("user required");
        }
        return userRepository.save(user);
    }

    public List<User> findAll() {
        return userRepository.findAll();
    }

    public String getName() {
        return "users";
    }

    public void setCallCount(int callCount) {
        this.callCount = callCount;
    }

    private void audit(String action) {
        auditLog.record(action);
    }
}
`

func TestScanSourceService(t *testing.T) {
	s := NewScanner()
	cls, err := s.ScanSource(context.Background(), "UserService.java", []byte(userServiceSource))
	require.NoError(t, err)
	require.NotNil(t, cls)

	assert.Equal(t, "UserService", cls.Name)
	assert.Equal(t, "com.example.service", cls.Package)
	assert.Equal(t, "com.example.service.UserService", cls.QualifiedName)
	assert.Equal(t, model.RoleBusinessService, cls.Role)
	assert.False(t, cls.IsInterface)
	assert.False(t, cls.IsAbstract)

	require.Len(t, cls.Annotations, 1)
	assert.Equal(t, "Service", cls.Annotations[0].Name)
	assert.Equal(t, "org.springframework.stereotype.Service", cls.Annotations[0].QualifiedName)

	require.Len(t, cls.Fields, 3)
	repo := cls.Fields[0]
	assert.Equal(t, "userRepository", repo.Name)
	assert.Equal(t, "UserRepository", repo.Type)
	assert.Equal(t, "com.example.repo.UserRepository", repo.ResolvedType)
	assert.Equal(t, model.AccessPrivate, repo.Visibility)
	assert.True(t, repo.Injected)

	audit := cls.Fields[1]
	assert.Equal(t, "auditLog", audit.Name)
	assert.True(t, audit.Final)
	assert.True(t, audit.Injected, "sole constructor parameter should mark the field injected")

	count := cls.Fields[2]
	assert.Equal(t, "callCount", count.Name)
	assert.Equal(t, "int", count.Type)
	assert.False(t, count.Injected)

	assert.Equal(t, []string{"UserRepository", "AuditLog"}, cls.Dependencies)

	require.Len(t, cls.Methods, 6)
	findByID := cls.Methods[0]
	assert.Equal(t, "findById", findByID.Name)
	assert.Equal(t, "Optional<User>", findByID.ReturnType)
	assert.Equal(t, "java.util.Optional", findByID.ResolvedReturn)
	require.Len(t, findByID.Parameters, 1)
	assert.Equal(t, "id", findByID.Parameters[0].Name)
	assert.Equal(t, "Long", findByID.Parameters[0].Type)
	assert.Equal(t, "java.lang.Long", findByID.Parameters[0].ResolvedType)

	create := cls.Methods[1]
	assert.Equal(t, []string{"DuplicateUserException"}, create.Throws)
	assert.Equal(t, []string{"IllegalArgumentException"}, create.PossibleFailures)

	assert.True(t, cls.Methods[3].IsGetter())
	assert.True(t, cls.Methods[4].IsSetter())
	assert.Equal(t, model.AccessPrivate, cls.Methods[5].Visibility)
}

func TestScanSourceInterface(t *testing.T) {
	src := `package com.example.repo;

import com.example.model.User;
import java.util.Optional;

public interface UserRepository {
    Optional<User> findById(Long id);
    User save(User user);
}
`
	s := NewScanner()
	cls, err := s.ScanSource(context.Background(), "UserRepository.java", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, cls)

	assert.True(t, cls.IsInterface)
	assert.Equal(t, model.RoleOther, cls.Role)
	require.Len(t, cls.Methods, 2)
	for _, m := range cls.Methods {
		assert.True(t, m.Abstract, "interface method %s should be abstract", m.Name)
	}
}

func TestScanSourceNoDeclaration(t *testing.T) {
	src := "package com.example;\n\nimport java.util.List;\n"
	s := NewScanner()
	cls, err := s.ScanSource(context.Background(), "package-info.java", []byte(src))
	require.NoError(t, err)
	assert.Nil(t, cls)
}

func TestScanSourceParseError(t *testing.T) {
	s := NewScanner()
	cls, err := s.ScanSource(context.Background(), "Broken.java", []byte("@@@@ ???? {{{{"))
	require.Error(t, err)
	assert.Nil(t, cls)
	assert.Contains(t, err.Error(), "Broken.java")
}

func TestPrimaryDeclarationSelection(t *testing.T) {
	src := `package com.example;

class Helper {
}

public class Widget {
    public void run() {
    }
}
`
	s := NewScanner()

	cls, err := s.ScanSource(context.Background(), "Widget.java", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, "Widget", cls.Name, "file name match should win over declaration order")

	cls, err = s.ScanSource(context.Background(), "Unrelated.java", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, "Helper", cls.Name, "without a name match the first declaration wins")
}

func TestScanSourceDefaultPackage(t *testing.T) {
	s := NewScanner()
	cls, err := s.ScanSource(context.Background(), "Solo.java", []byte("class Solo {}\n"))
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, "Solo", cls.Name)
	assert.Equal(t, "", cls.Package)
	assert.Equal(t, "Solo", cls.QualifiedName)
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "UserService.java")
	require.NoError(t, os.WriteFile(path, []byte(userServiceSource), 0644))

	s := NewScanner()
	cls, err := s.ScanFile(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, cls)
	assert.Equal(t, "UserService", cls.Name)
	assert.Equal(t, path, cls.SourcePath)

	_, err = s.ScanFile(context.Background(), filepath.Join(dir, "Missing.java"))
	require.Error(t, err)
}

func TestScannerReuse(t *testing.T) {
	s := NewScanner()
	for _, src := range []string{userServiceSource, "class Second {}\n"} {
		cls, err := s.ScanSource(context.Background(), "Any.java", []byte(src))
		require.NoError(t, err)
		require.NotNil(t, cls)
	}
}
