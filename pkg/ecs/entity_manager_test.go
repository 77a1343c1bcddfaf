package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPoseComponent struct {
	X, Y float64
}

type testSpeedComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id1 == InvalidEntity {
		t.Error("Entity ID must never be InvalidEntity")
	}
}

func TestGenericAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPoseComponent{X: 100, Y: 200})

	pose, ok := GetComponent[*testPoseComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pose.X != 100 || pose.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pose.X, pose.Y)
	}

	// 泛型版本与反射版本看到的是同一个组件
	raw, found := em.GetComponent(id, reflect.TypeOf(&testPoseComponent{}))
	if !found || raw.(*testPoseComponent) != pose {
		t.Error("Generic and reflection lookups should return the same instance")
	}

	if _, ok := GetComponent[*testSpeedComponent](em, id); ok {
		t.Error("Missing component should not be found")
	}
	if !HasComponent[*testPoseComponent](em, id) {
		t.Error("HasComponent should report added component")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPoseComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if _, ok := GetComponent[*testPoseComponent](em, id); !ok {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失，也不再出现在查询结果中
	em.RemoveMarkedEntities()
	if _, ok := GetComponent[*testPoseComponent](em, id); ok {
		t.Error("Entity should be removed after cleanup")
	}
	if got := GetEntitiesWith1[*testPoseComponent](em); len(got) != 0 {
		t.Errorf("Destroyed entity still returned by query: %v", got)
	}
}

func TestGetEntitiesWithOrdered(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPoseComponent{})
	AddComponent(em, id1, &testSpeedComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPoseComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testSpeedComponent{})

	both := em.GetEntitiesWith(reflect.TypeOf(&testPoseComponent{}), reflect.TypeOf(&testSpeedComponent{}))
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1 with both components, got %v", both)
	}

	poses := GetEntitiesWith1[*testPoseComponent](em)
	if len(poses) != 2 || poses[0] != id1 || poses[1] != id2 {
		t.Errorf("Expected [id1 id2] in creation order, got %v", poses)
	}
}
