package ecs

import "reflect"

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体添加类型为 T 的组件
//
//	ecs.AddComponent(em, id, &components.PositionComponent{X: 10})
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.addComponent(id, typeOf[T](), component)
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.getComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.getComponent(id, typeOf[T]())
	return ok
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.removeComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 A 组件的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有 A、B 组件的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[A](), typeOf[B]())
}

// GetEntitiesWith3 查询同时拥有 A、B、C 组件的实体
func GetEntitiesWith3[A, B, C any](em *EntityManager) []EntityID {
	return em.entitiesWith(typeOf[A](), typeOf[B](), typeOf[C]())
}
